package course_test

import (
	"context"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/storage/database/inmem"
	testutil "github.com/vidyalabs/vidya/tests"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

func newService(repo course.Repository) *course.Service {
	return course.NewService(repo, testutil.Logger{})
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewCourseRepository()
	svc := newService(repo)

	created, outcome, err := svc.Upsert(ctx, course.NewCourse{
		Code:       "22EC301",
		ShortCode:  "EC301",
		Name:       "Digital Signal Processing",
		Type:       "Theory",
		Department: "ECE",
		Year:       3,
		Semester:   1,
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != course.OutcomeAdded {
		t.Errorf("outcome = %v, want OutcomeAdded", outcome)
	}
	if created.ID == "" {
		t.Error("created course has no ID")
	}

	// same key again; fills blanks and keeps the row
	updated, outcome, err := svc.Upsert(ctx, course.NewCourse{
		Code:       "22EC301",
		Department: "ECE",
		Year:       3,
		FacultyID:  "fac-1",
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != course.OutcomeUpdated {
		t.Errorf("outcome = %v, want OutcomeUpdated", outcome)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed: %s -> %s", created.ID, updated.ID)
	}
	if updated.Name != "Digital Signal Processing" {
		t.Errorf("Name = %q, blank incoming must not erase it", updated.Name)
	}
	if updated.FacultyID != "fac-1" {
		t.Errorf("FacultyID = %q, want fac-1", updated.FacultyID)
	}
	if got := len(repo.All()); got != 1 {
		t.Errorf("stored courses = %d, want 1", got)
	}
}

func TestService_Upsert_wildcardYear(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewCourseRepository()
	svc := newService(repo)

	// first sheet carried no year
	created, _, err := svc.Upsert(ctx, course.NewCourse{Code: "22EC301", Department: "ECE"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// a later sheet knows the year; the stored row is claimed, not duplicated
	updated, outcome, err := svc.Upsert(ctx, course.NewCourse{Code: "22EC301", Department: "ECE", Year: 3})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != course.OutcomeUpdated {
		t.Errorf("outcome = %v, want OutcomeUpdated", outcome)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed: %s -> %s", created.ID, updated.ID)
	}
	if updated.Year != 3 {
		t.Errorf("Year = %d, want 3", updated.Year)
	}
	if got := len(repo.All()); got != 1 {
		t.Errorf("stored courses = %d, want 1", got)
	}
}

func TestService_Upsert_distinctDepartments(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewCourseRepository()
	svc := newService(repo)

	if _, _, err := svc.Upsert(ctx, course.NewCourse{Code: "22MA101", Department: "ECE", Year: 1}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	_, outcome, err := svc.Upsert(ctx, course.NewCourse{Code: "22MA101", Department: "CSE", Year: 1})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != course.OutcomeAdded {
		t.Errorf("outcome = %v, want OutcomeAdded for another department", outcome)
	}
	if got := len(repo.All()); got != 2 {
		t.Errorf("stored courses = %d, want 2", got)
	}
}

func TestService_Upsert_validation(t *testing.T) {
	svc := newService(inmem.NewCourseRepository())
	ctx := context.Background()

	tests := []struct {
		name string
		nc   course.NewCourse
	}{
		{"empty code", course.NewCourse{Department: "ECE"}},
		{"code too short", course.NewCourse{Code: "EC", Department: "ECE"}},
		{"code with punctuation", course.NewCourse{Code: "22-EC-301", Department: "ECE"}},
		{"no department", course.NewCourse{Code: "22EC301"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Upsert(ctx, tt.nc)
			if _, ok := errors.Cause(err).(validator.ValidationErrors); !ok {
				t.Errorf("Upsert() error = %v, want validator.ValidationErrors", err)
			}
		})
	}
}

func TestService_UpsertBatch(t *testing.T) {
	svc := newService(inmem.NewCourseRepository())

	res := svc.UpsertBatch(context.Background(), []course.NewCourse{
		{Code: "22EC301", Department: "ECE"},
		{Code: "", Department: "ECE"},
		{Code: "22EC302", Department: "ECE"},
	})
	if res.Added != 2 || res.Skipped != 1 {
		t.Errorf("BatchResult = %+v", res)
	}
	if _, ok := res.Resolved["22EC301"]; !ok {
		t.Error("Resolved missing 22EC301")
	}
	if len(res.Errors) != 1 {
		t.Errorf("Errors = %+v", res.Errors)
	}
}
