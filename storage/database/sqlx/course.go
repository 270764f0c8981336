package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) getExec(exec []core.DBExecutor) core.DBExecutor {
	if len(exec) > 0 {
		return exec[0]
	}
	return repo.db
}

type courseRow struct {
	ID            string         `db:"id"`
	Code          string         `db:"code"`
	ShortCode     string         `db:"short_code"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	ElectiveGroup string         `db:"elective_group"`
	Department    string         `db:"department"`
	Year          sql.NullInt32  `db:"year"`
	Semester      sql.NullInt32  `db:"semester"`
	AcademicYear  string         `db:"academic_year"`
	FacultyID     sql.NullString `db:"faculty_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func courseRowOf(c course.Course) courseRow {
	return courseRow{
		ID:            c.ID,
		Code:          c.Code,
		ShortCode:     c.ShortCode,
		Name:          c.Name,
		Type:          c.Type,
		ElectiveGroup: c.ElectiveGroup,
		Department:    c.Department,
		Year:          sql.NullInt32{Int32: int32(c.Year), Valid: c.Year > 0},
		Semester:      sql.NullInt32{Int32: int32(c.Semester), Valid: c.Semester > 0},
		AcademicYear:  c.AcademicYear,
		FacultyID:     sql.NullString{String: c.FacultyID, Valid: c.FacultyID != ""},
		CreatedAt:     c.CreatedAt.UTC(),
		UpdatedAt:     c.UpdatedAt.UTC(),
	}
}

func (r courseRow) course() course.Course {
	return course.Course{
		ID:            r.ID,
		Code:          r.Code,
		ShortCode:     r.ShortCode,
		Name:          r.Name,
		Type:          r.Type,
		ElectiveGroup: r.ElectiveGroup,
		Department:    r.Department,
		Year:          int(r.Year.Int32),
		Semester:      int(r.Semester.Int32),
		AcademicYear:  r.AcademicYear,
		FacultyID:     r.FacultyID.String,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

const courseColumns = `id, code, short_code, name, type, elective_group, department,
	year, semester, academic_year, faculty_id, created_at, updated_at`

// GetCourse matches on (code, department, year). A stored NULL year
// matches any incoming year, and incoming year 0 matches any stored
// year; exact year matches win over the wildcard.
func (repo courseRepository) GetCourse(ctx context.Context, code, department string, year int, exec ...core.DBExecutor) (course.Course, error) {
	var row courseRow
	err := sqlx.GetContext(ctx, repo.getExec(exec), &row,
		`SELECT `+courseColumns+` FROM course
		 WHERE code = $1 AND department = $2 AND (year = $3 OR year IS NULL OR $3 = 0)
		 ORDER BY (year = $3) DESC NULLS LAST
		 LIMIT 1`, code, department, year)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return row.course(), nil
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	c.ID = uuid.New().String()
	row := courseRowOf(c)

	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec),
		`INSERT INTO course (`+courseColumns+`)
		 VALUES (:id, :code, :short_code, :name, :type, :elective_group, :department,
		         :year, :semester, :academic_year, :faculty_id, :created_at, :updated_at)`, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	row := courseRowOf(c)
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec),
		`UPDATE course SET
			short_code = :short_code, name = :name, type = :type,
			elective_group = :elective_group, year = :year, semester = :semester,
			academic_year = :academic_year, faculty_id = :faculty_id, updated_at = :updated_at
		 WHERE id = :id`, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	return c, nil
}
