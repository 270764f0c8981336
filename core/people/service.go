package people

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/identity"
)

// Outcome tags what an upsert did with the record.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeUpdated
)

type (
	// RowError records a single record that could not be upserted;
	// batch processing continues past it.
	RowError struct {
		Key    string `json:"key"`
		Reason string `json:"reason"`
	}

	// BatchResult aggregates a sequential batch upsert. Resolved holds
	// the persisted people (with IDs) in input order, minus skipped rows.
	BatchResult struct {
		Added    int        `json:"added"`
		Updated  int        `json:"updated"`
		Skipped  int        `json:"skipped"`
		Resolved []Person   `json:"-"`
		Errors   []RowError `json:"errors,omitempty"`
	}

	// StudentService reconciles extracted student records into the store.
	StudentService struct {
		repo     Repository
		resolver *identity.Resolver
		accounts AccountProvisioner
		mailSvc  core.EmailService
		logger   core.Logger
		conf     *core.Config
	}

	// FacultyService reconciles derived faculty records into the store.
	FacultyService struct {
		repo     Repository
		resolver *identity.Resolver
		accounts AccountProvisioner
		mailSvc  core.EmailService
		logger   core.Logger
		conf     *core.Config
	}
)

func NewStudentService(
	repo Repository,
	resolver *identity.Resolver,
	accounts AccountProvisioner,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *StudentService {
	return &StudentService{repo: repo, resolver: resolver, accounts: accounts, mailSvc: mailSvc, logger: logger, conf: conf}
}

func NewFacultyService(
	repo Repository,
	resolver *identity.Resolver,
	accounts AccountProvisioner,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *FacultyService {
	return &FacultyService{repo: repo, resolver: resolver, accounts: accounts, mailSvc: mailSvc, logger: logger, conf: conf}
}

// Upsert matches by roll number, then synthesized email, then creates.
// Mutable profile fields are overwritten on match; the ID never changes.
func (svc *StudentService) Upsert(ctx context.Context, ns NewStudent, exec ...core.DBExecutor) (Person, Outcome, error) {
	if err := ns.Validate(); err != nil {
		return Person{}, 0, err
	}

	email := svc.resolver.EmailFor(ns.FullName)
	match, err := MatchPerson(ctx, svc.repo, ns.HallTicket, email, exec...)
	if err != nil {
		return Person{}, 0, err
	}

	if match.Kind != NoMatch {
		p := match.Person
		p.FullName = ns.FullName
		p.Department = overwrite(p.Department, ns.Department)
		p.Mobile = overwrite(p.Mobile, ns.Mobile)
		p.RollNumber = overwrite(p.RollNumber, ns.HallTicket)
		p.Section = overwrite(p.Section, ns.Section)
		if ns.Year > 0 {
			p.Year = ns.Year
		}
		if ns.Semester > 0 {
			p.Semester = ns.Semester
		}
		p.UpdatedAt = time.Now().UTC()
		p, err = svc.repo.UpdatePerson(ctx, p, exec...)
		return p, OutcomeUpdated, err
	}

	p := Person{
		FullName:   ns.FullName,
		Role:       RoleStudent,
		Department: ns.Department,
		RollNumber: ns.HallTicket,
		Mobile:     ns.Mobile,
		Year:       ns.Year,
		Semester:   ns.Semester,
		Section:    ns.Section,
	}
	p, err = createPerson(ctx, svc.repo, svc.resolver, svc.accounts, svc.mailSvc, svc.logger, svc.conf, p, email, exec...)
	return p, OutcomeAdded, err
}

// UpsertBatch processes records sequentially with best-effort
// semantics: a failed row is recorded and skipped, not fatal.
func (svc *StudentService) UpsertBatch(ctx context.Context, items []NewStudent, exec ...core.DBExecutor) BatchResult {
	var res BatchResult
	for _, ns := range items {
		p, outcome, err := svc.Upsert(ctx, ns, exec...)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, RowError{Key: rowKey(ns.HallTicket, ns.FullName), Reason: err.Error()})
			svc.logger.Warn(fmt.Sprintf("skipping student %q: %v", ns.FullName, err), err)
			continue
		}
		res.Resolved = append(res.Resolved, p)
		if outcome == OutcomeAdded {
			res.Added++
		} else {
			res.Updated++
		}
	}
	return res
}

// Upsert matches faculty by synthesized email only.
func (svc *FacultyService) Upsert(ctx context.Context, nf NewFaculty, exec ...core.DBExecutor) (Person, Outcome, error) {
	if err := nf.Validate(); err != nil {
		return Person{}, 0, err
	}

	email := svc.resolver.EmailFor(nf.FullName)
	match, err := MatchPerson(ctx, svc.repo, "", email, exec...)
	if err != nil {
		return Person{}, 0, err
	}

	if match.Kind == MatchedByEmail {
		p := match.Person
		p.FullName = nf.FullName
		p.Department = overwrite(p.Department, nf.Department)
		p.UpdatedAt = time.Now().UTC()
		p, err = svc.repo.UpdatePerson(ctx, p, exec...)
		return p, OutcomeUpdated, err
	}

	p := Person{
		FullName:   nf.FullName,
		Role:       RoleFaculty,
		Department: nf.Department,
	}
	p, err = createPerson(ctx, svc.repo, svc.resolver, svc.accounts, svc.mailSvc, svc.logger, svc.conf, p, email, exec...)
	return p, OutcomeAdded, err
}

func (svc *FacultyService) UpsertBatch(ctx context.Context, items []NewFaculty, exec ...core.DBExecutor) BatchResult {
	var res BatchResult
	for _, nf := range items {
		p, outcome, err := svc.Upsert(ctx, nf, exec...)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, RowError{Key: nf.FullName, Reason: err.Error()})
			svc.logger.Warn(fmt.Sprintf("skipping faculty %q: %v", nf.FullName, err), err)
			continue
		}
		res.Resolved = append(res.Resolved, p)
		if outcome == OutcomeAdded {
			res.Added++
		} else {
			res.Updated++
		}
	}
	return res
}

// createPerson resolves a free email address, provisions the external
// login account (best-effort), inserts the profile and sends the
// welcome credentials email (best-effort).
func createPerson(
	ctx context.Context,
	repo Repository,
	resolver *identity.Resolver,
	accounts AccountProvisioner,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
	p Person,
	candidateEmail string,
	exec ...core.DBExecutor,
) (Person, error) {
	// names written in a non-Latin script can yield no local part at all
	if candidateEmail == "" {
		return Person{}, core.NewValidationError(
			fmt.Errorf("no email could be derived from %q", p.FullName),
			core.FieldError{Field: "email", Error: "name yields no usable email address"},
		)
	}

	email, err := resolver.UniqueEmail(candidateEmail, func(probe string) (bool, error) {
		return repo.EmailExists(ctx, probe, exec...)
	})
	if err != nil {
		return Person{}, err
	}
	p.Email = email

	pwd := generatePassword()
	if err = p.SetPassword(pwd); err != nil {
		return Person{}, err
	}

	// account provisioning failure degrades to a local-only profile
	if accounts != nil {
		externalID, aErr := accounts.CreateAccount(ctx, Account{
			Email:    email,
			Password: pwd,
			FullName: p.FullName,
			Role:     p.Role,
		})
		switch aErr {
		case nil, ErrAccountExists:
			p.ExternalID = externalID
		default:
			logger.Warn(fmt.Sprintf("provisioning account for %s: %v", email, aErr), aErr)
		}
	}

	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	p, err = repo.CreatePerson(ctx, p, exec...)
	if err != nil {
		return Person{}, err
	}

	if mailSvc != nil {
		mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: p.FullName, Address: p.Email}},
			Subject: "Your " + conf.AppName + " account",
			BodyStr: fmt.Sprintf(
				"Hello %s,\n\nAn account has been created for you.\n\nLogin: %s\nPassword: %s\n\nPlease change your password after first login.\n%s",
				p.FullName, p.Email, pwd, conf.FrontendBaseURL,
			),
		})
	}
	return p, nil
}

func overwrite(old, incoming string) string {
	if incoming = strings.TrimSpace(incoming); incoming != "" {
		return incoming
	}
	return old
}

func generatePassword() string {
	return uuid.New().String()[:13]
}

func rowKey(roll, name string) string {
	if roll != "" {
		return roll
	}
	return name
}
