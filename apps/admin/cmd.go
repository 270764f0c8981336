package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/vidyalabs/vidya/core/ingest"
	"github.com/vidyalabs/vidya/core/people"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sqlx.DB
	personRepo people.Repository
	importer   *ingest.Importer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (up, down, status, ...)")
	fmt.Println("  import -file PATH [-dept DEPARTMENT] - parse a roster sheet and reconcile it into the DB")
	fmt.Println("  addperson -name NAME -email EMAIL -dept DEPARTMENT [-role ROLE] [-roll ROLLNUMBER] - update or create a person")
	fmt.Println("  resetpassword -email EMAIL - reset a person's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path to the roster spreadsheet (.xlsx or .csv).")
	importDept := importCmd.String("dept", "", "Department override; defaults to the sheet's own.")

	addPersonCmd := flag.NewFlagSet("addperson", flag.ExitOnError)
	addPersonName := addPersonCmd.String("name", "", "The person's full name.")
	addPersonEmail := addPersonCmd.String("email", "", "The person's email.")
	addPersonDept := addPersonCmd.String("dept", "", "The person's department.")
	addPersonRole := addPersonCmd.String("role", people.RoleAdmin, "One of: student, faculty, hod, admin.")
	addPersonRoll := addPersonCmd.String("roll", "", "The student's roll number (hall ticket).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The person's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importFile, *importDept)
	case "addperson":
		if err := addPersonCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addPersonName == "" || *addPersonEmail == "" || *addPersonDept == "" {
			addPersonCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addPersonCmd.Usage()
			return errHelp
		}
		return cli.addPerson(*addPersonName, *addPersonEmail, *addPersonDept, *addPersonRole, *addPersonRoll, string(pwd))
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
