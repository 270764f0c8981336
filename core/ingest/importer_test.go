package ingest_test

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/core/identity"
	"github.com/vidyalabs/vidya/core/ingest"
	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/core/roster"
	"github.com/vidyalabs/vidya/storage/database/inmem"
	testutil "github.com/vidyalabs/vidya/tests"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

type mailStub struct{}

func (mailStub) SendMessages(...*core.EmailMessage) {}

type accountsStub struct{ n int }

func (a *accountsStub) CreateAccount(ctx context.Context, acct people.Account) (string, error) {
	a.n++
	return fmt.Sprintf("ext-%d", a.n), nil
}

type fixture struct {
	importer    *ingest.Importer
	people      *inmem.PersonRepository
	courses     *inmem.CourseRepository
	enrollments *inmem.EnrollmentRepository
	attendance  *inmem.AttendanceRepository
}

func setup(t *testing.T) fixture {
	t.Helper()

	personRepo := inmem.NewPersonRepository()
	courseRepo := inmem.NewCourseRepository()
	enrollRepo := inmem.NewEnrollmentRepository()
	attRepo := inmem.NewAttendanceRepository()

	conf := &core.Config{AppName: "vidya", FrontendBaseURL: "http://localhost:3000"}
	resolver := identity.NewResolver("svit.edu.in")
	logger := testutil.Logger{}

	students := people.NewStudentService(personRepo, resolver, &accountsStub{}, mailStub{}, logger, conf)
	faculty := people.NewFacultyService(personRepo, resolver, &accountsStub{}, mailStub{}, logger, conf)
	courses := course.NewService(courseRepo, logger)

	return fixture{
		importer: ingest.NewImporter(
			testutil.NewDB(t), roster.NewParser(),
			students, faculty, courses,
			enrollRepo, attRepo, logger,
		),
		people:      personRepo,
		courses:     courseRepo,
		enrollments: enrollRepo,
		attendance:  attRepo,
	}
}

func TestImporter_Commit(t *testing.T) {
	ctx := context.Background()
	fix := setup(t)

	res, err := fix.importer.Preview(testutil.BandedRosterGrid(), "")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	summary, err := fix.importer.Commit(ctx, res, "ECE")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	want := ingest.Summary{
		StudentsAdded:      2,
		FacultyAdded:       2,
		CoursesAdded:       3,
		EnrollmentsCreated: 5,
		AttendanceAdded:    5,
	}
	if !reflect.DeepEqual(*summary, want) {
		t.Errorf("first commit summary = %+v, want %+v", *summary, want)
	}

	// percentage is derived from attended over the sheet's total
	var found bool
	for _, s := range fix.attendance.All() {
		if s.AttendedClasses == 36 {
			found = true
			if s.Percentage == nil || *s.Percentage != 90 {
				t.Errorf("Percentage = %v, want 90", s.Percentage)
			}
			if s.Month != 8 || s.Year != 2023 {
				t.Errorf("period = %d/%d, want 8/2023", s.Month, s.Year)
			}
		}
	}
	if !found {
		t.Error("no attendance row with 36 attended classes")
	}

	// committing the same parse again must add nothing
	summary, err = fix.importer.Commit(ctx, res, "ECE")
	if err != nil {
		t.Fatalf("second Commit() error = %v", err)
	}
	want = ingest.Summary{
		StudentsUpdated:   2,
		FacultyUpdated:    2,
		CoursesUpdated:    3,
		AttendanceUpdated: 5,
	}
	if !reflect.DeepEqual(*summary, want) {
		t.Errorf("second commit summary = %+v, want %+v", *summary, want)
	}
	if got := fix.enrollments.Count(); got != 5 {
		t.Errorf("enrollments = %d, want 5", got)
	}
	if got := len(fix.attendance.All()); got != 5 {
		t.Errorf("attendance rows = %d, want 5", got)
	}
	if got := len(fix.courses.All()); got != 3 {
		t.Errorf("courses = %d, want 3", got)
	}
}

func TestImporter_Commit_departmentFromMetadata(t *testing.T) {
	fix := setup(t)

	res, err := fix.importer.Preview(testutil.BandedRosterGrid(), "")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if _, err = fix.importer.Commit(context.Background(), res, ""); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	for _, c := range fix.courses.All() {
		if c.Department != "ECE" {
			t.Errorf("Department = %q, want ECE from sheet metadata", c.Department)
		}
	}
}

func TestImporter_Commit_noTimeAnchor(t *testing.T) {
	fix := setup(t)

	res, err := fix.importer.Preview(testutil.BandedRosterGridNoDates(), "")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	summary, err := fix.importer.Commit(context.Background(), res, "ECE")
	if err != ingest.ErrNoTimeAnchor {
		t.Fatalf("Commit() error = %v, want ErrNoTimeAnchor", err)
	}
	// everything before the attendance stage is already committed
	if summary == nil {
		t.Fatal("Commit() returned no summary")
	}
	if summary.FacultyAdded != 2 || summary.CoursesAdded != 3 || summary.StudentsAdded != 2 {
		t.Errorf("partial summary = %+v", summary)
	}
	if summary.EnrollmentsCreated != 5 {
		t.Errorf("EnrollmentsCreated = %d, want 5", summary.EnrollmentsCreated)
	}
	if got := len(fix.attendance.All()); got != 0 {
		t.Errorf("attendance rows = %d, want 0", got)
	}
}

func TestImporter_Commit_validation(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	t.Run("nil result", func(t *testing.T) {
		_, err := fix.importer.Commit(ctx, nil, "ECE")
		if _, ok := errors.Cause(err).(*core.ValidationError); !ok {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("no department anywhere", func(t *testing.T) {
		res := &roster.ParseResult{Subjects: []roster.Subject{{SubjectCode: "22EC301"}}}
		_, err := fix.importer.Commit(ctx, res, "")
		if _, ok := errors.Cause(err).(*core.ValidationError); !ok {
			t.Errorf("error = %v, want validation error", err)
		}
	})
}
