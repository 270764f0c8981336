package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ course.AttendanceRepository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) getExec(exec []core.DBExecutor) core.DBExecutor {
	if len(exec) > 0 {
		return exec[0]
	}
	return repo.db
}

// UpsertSummary inserts the aggregate or, on a (student, course, month,
// year) conflict, updates the counts in place. The returned flag is
// true for a fresh insert (xmax = 0 only holds for new tuples).
func (repo attendanceRepository) UpsertSummary(ctx context.Context, s course.AttendanceSummary, exec ...core.DBExecutor) (bool, error) {
	var (
		total sql.NullInt32
		pct   sql.NullFloat64
	)
	if s.TotalClasses != nil {
		total = sql.NullInt32{Int32: int32(*s.TotalClasses), Valid: true}
	}
	if s.Percentage != nil {
		pct = sql.NullFloat64{Float64: *s.Percentage, Valid: true}
	}

	var created bool
	err := sqlx.GetContext(ctx, repo.getExec(exec), &created,
		`INSERT INTO attendance_summary
			(id, student_id, course_id, month, year, attended_classes, total_classes, percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (student_id, course_id, month, year) DO UPDATE SET
			attended_classes = EXCLUDED.attended_classes,
			total_classes    = EXCLUDED.total_classes,
			percentage       = EXCLUDED.percentage,
			updated_at       = now()
		 RETURNING (xmax = 0)`,
		uuid.New().String(), s.StudentID, s.CourseID, s.Month, s.Year, s.AttendedClasses, total, pct)
	if err != nil {
		return false, errors.Wrap(err, "upserting attendance summary")
	}
	return created, nil
}
