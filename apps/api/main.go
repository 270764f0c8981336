package main

import (
	stdlog "log"
	"os"

	echoapi "github.com/vidyalabs/vidya/apps/api/echo"
	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/core/identity"
	"github.com/vidyalabs/vidya/core/ingest"
	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/core/roster"
	accountsvc "github.com/vidyalabs/vidya/services/accounts"
	emailsvc "github.com/vidyalabs/vidya/services/email"
	logsvc "github.com/vidyalabs/vidya/services/logger"
	"github.com/vidyalabs/vidya/storage/database"
	sqlxrepos "github.com/vidyalabs/vidya/storage/database/sqlx"
)

func main() {
	std := stdlog.New(os.Stdout, "API : ", stdlog.LstdFlags|stdlog.Lshortfile)

	conf := core.NewConfig()
	core.InitValidators()

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var accounts people.AccountProvisioner
	if conf.Accounts.BaseURL != "" {
		accounts = accountsvc.NewHTTPProvisioner(conf, logger)
	} else {
		accounts = accountsvc.NewConsoleProvisioner(logger)
	}

	resolver := identity.NewResolver(conf.AccountsEmailDomain)
	personRepo := sqlxrepos.NewPersonRepository(db)

	importer := ingest.NewImporter(
		db,
		roster.NewParser(),
		people.NewStudentService(personRepo, resolver, accounts, mailSvc, logger, conf),
		people.NewFacultyService(personRepo, resolver, accounts, mailSvc, logger, conf),
		course.NewService(sqlxrepos.NewCourseRepository(db), logger),
		sqlxrepos.NewEnrollmentRepository(db),
		sqlxrepos.NewAttendanceRepository(db),
		logger,
	)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:  conf.Server.Addr,
		Conf:     conf,
		Logger:   logger,
		Importer: importer,
	})
	if err := app.Start(); err != nil {
		logger.Fatal(err.Error(), err)
	}
}
