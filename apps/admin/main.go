package main

import (
	"log"
	"os"

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

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	core.InitValidators()

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	personRepo := sqlxrepos.NewPersonRepository(db)
	resolver := identity.NewResolver(conf.AccountsEmailDomain)
	mailSvc := emailsvc.NewConsoleService(conf)
	accounts := accountsvc.NewConsoleProvisioner(appLogger)

	importer := ingest.NewImporter(
		db,
		roster.NewParser(),
		people.NewStudentService(personRepo, resolver, accounts, mailSvc, appLogger, conf),
		people.NewFacultyService(personRepo, resolver, accounts, mailSvc, appLogger, conf),
		course.NewService(sqlxrepos.NewCourseRepository(db), appLogger),
		sqlxrepos.NewEnrollmentRepository(db),
		sqlxrepos.NewAttendanceRepository(db),
		appLogger,
	)

	// start CLI
	cli := commandLine{
		db:         db,
		personRepo: personRepo,
		importer:   importer,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
