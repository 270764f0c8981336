package course

import (
	"context"
	"errors"

	"github.com/vidyalabs/vidya/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		// GetCourse matches on (code, department, year); a stored NULL
		// year is a wildcard, and year 0 matches any stored year.
		GetCourse(ctx context.Context, code, department string, year int, exec ...core.DBExecutor) (Course, error)
		CreateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		UpdateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
	}

	EnrollmentRepository interface {
		// UpsertEnrollment inserts the pair, reporting whether a new
		// row was created; a conflicting pair is a no-op.
		UpsertEnrollment(ctx context.Context, e Enrollment, exec ...core.DBExecutor) (created bool, err error)
	}

	AttendanceRepository interface {
		// UpsertSummary inserts or, on a (student, course, month, year)
		// conflict, updates attended/total/percentage in place.
		UpsertSummary(ctx context.Context, s AttendanceSummary, exec ...core.DBExecutor) (created bool, err error)
	}
)
