package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ course.EnrollmentRepository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) getExec(exec []core.DBExecutor) core.DBExecutor {
	if len(exec) > 0 {
		return exec[0]
	}
	return repo.db
}

// UpsertEnrollment inserts the pair; an existing pair is left alone.
func (repo enrollmentRepository) UpsertEnrollment(ctx context.Context, e course.Enrollment, exec ...core.DBExecutor) (bool, error) {
	res, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO enrollment (student_id, course_id) VALUES ($1, $2)
		 ON CONFLICT (student_id, course_id) DO NOTHING`,
		e.StudentID, e.CourseID)
	if err != nil {
		return false, errors.Wrap(err, "inserting enrollment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "inserting enrollment")
	}
	return n > 0, nil
}
