package core

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName string
		Env     string // DEV (default), TEST, QA, PROD
		Debug   bool
		Build   string

		SecretKey           string
		FrontendBaseURL     string
		DefaultFromName     string
		DefaultFromAddr     string
		SendgridApiKey      string
		RollbarToken        string
		AccountsEmailDomain string

		Server   ServerConfig
		Database DatabaseConfig
		Accounts AccountsConfig
	}

	ServerConfig struct {
		Host            string
		Addr            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	// AccountsConfig configures the hosted identity provider used to
	// provision login accounts for imported people.
	AccountsConfig struct {
		BaseURL string
		ApiKey  string
		Timeout time.Duration
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

func (c Config) IsTest() bool {
	return c.Env == "TEST"
}

// NewConfig loads the app configuration from defaults, an optional
// `config/.env.<env>` file and <ENV>_-prefixed environment variables.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Vidya")
	conf.SetDefault("secretKey", "x#8e&yq$2z!u)wvp0(h5s^d4mg+7c@9r-k3n6bt1lfaj%o_i")
	conf.SetDefault("frontendBaseUrl", "http://localhost:3000")
	conf.SetDefault("defaultFromName", "Vidya")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("accountsEmailDomain", "vidya.edu.in")

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.addr", ":8000")
	conf.SetDefault("server.debugHost", "localhost:9000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "vidya")
	conf.SetDefault("database.user", "")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.disableTls", true)

	conf.SetDefault("accounts.baseUrl", "")
	conf.SetDefault("accounts.apiKey", "")
	conf.SetDefault("accounts.timeout", 10*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := fmt.Sprintf("config/.env.%s", strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		_ = godotenv.Load(dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:             conf.GetString("appName"),
		Env:                 env,
		Debug:               conf.GetBool("debug"),
		Build:               conf.GetString("build"),
		SecretKey:           conf.GetString("secretKey"),
		FrontendBaseURL:     conf.GetString("frontendBaseUrl"),
		DefaultFromName:     conf.GetString("defaultFromName"),
		DefaultFromAddr:     conf.GetString("defaultFromEmail"),
		SendgridApiKey:      conf.GetString("sendgridApiKey"),
		RollbarToken:        conf.GetString("rollbarToken"),
		AccountsEmailDomain: conf.GetString("accountsEmailDomain"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Addr:            conf.GetString("server.addr"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			DisableTLS:    conf.GetBool("database.disableTls"),
		},
		Accounts: AccountsConfig{
			BaseURL: conf.GetString("accounts.baseUrl"),
			ApiKey:  conf.GetString("accounts.apiKey"),
			Timeout: conf.GetDuration("accounts.timeout"),
		},
	}
}
