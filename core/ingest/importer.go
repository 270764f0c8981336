// Package ingest orchestrates the roster pipeline: the pure preview
// stage (parse) and the side-effecting commit stage (reconcile people
// and courses, synthesize enrollments, seed attendance aggregates).
package ingest

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/core/roster"
)

type (
	// SkippedRow identifies one record that commit could not upsert.
	SkippedRow struct {
		Entity string `json:"entity"`
		Key    string `json:"key"`
		Reason string `json:"reason"`
	}

	// Summary is the commit boundary's aggregate result. Commit is
	// best-effort per row: counts plus skipped rows, never a single
	// opaque failure for the whole file.
	Summary struct {
		StudentsAdded      int          `json:"studentsAdded"`
		StudentsUpdated    int          `json:"studentsUpdated"`
		FacultyAdded       int          `json:"facultyAdded"`
		FacultyUpdated     int          `json:"facultyUpdated"`
		CoursesAdded       int          `json:"coursesAdded"`
		CoursesUpdated     int          `json:"coursesUpdated"`
		EnrollmentsCreated int          `json:"enrollmentsCreated"`
		AttendanceAdded    int          `json:"attendanceAdded"`
		AttendanceUpdated  int          `json:"attendanceUpdated"`
		Skipped            []SkippedRow `json:"skipped,omitempty"`
	}

	// Importer wires the preview and commit stages together.
	Importer struct {
		db          core.DB
		parser      *roster.Parser
		students    *people.StudentService
		faculty     *people.FacultyService
		courses     *course.Service
		enrollments course.EnrollmentRepository
		attendance  course.AttendanceRepository
		logger      core.Logger
	}
)

// ErrNoTimeAnchor aborts the attendance-seeding stage when the sheet
// carries no from-date; earlier stages' work is already committed.
var ErrNoTimeAnchor = errors.New("roster has no from-date to anchor attendance aggregates")

func NewImporter(
	db core.DB,
	parser *roster.Parser,
	students *people.StudentService,
	faculty *people.FacultyService,
	courses *course.Service,
	enrollments course.EnrollmentRepository,
	attendance course.AttendanceRepository,
	logger core.Logger,
) *Importer {
	return &Importer{
		db:          db,
		parser:      parser,
		students:    students,
		faculty:     faculty,
		courses:     courses,
		enrollments: enrollments,
		attendance:  attendance,
		logger:      logger,
	}
}

// Preview is the pure parse stage: no persistence, safe to repeat.
func (imp *Importer) Preview(g roster.Grid, filenameHint string) (*roster.ParseResult, error) {
	return imp.parser.Parse(g, filenameHint)
}

// Commit reconciles a confirmed parse result into the store. Each
// entity collection runs inside its own transaction, sequentially:
// faculty, courses, students, enrollments, attendance aggregates.
// Committing the same result twice adds nothing the second time.
func (imp *Importer) Commit(ctx context.Context, res *roster.ParseResult, department string) (*Summary, error) {
	if res == nil || len(res.Subjects) == 0 {
		return nil, core.NewValidationError(fmt.Errorf("nothing to commit"))
	}
	dept := core.CleanString(department)
	if dept == "" {
		dept = core.CleanString(res.Metadata.Department)
	}
	if dept == "" {
		return nil, core.NewValidationError(
			fmt.Errorf("no department"),
			core.FieldError{Field: "department", Error: "this field is required"},
		)
	}

	summary := &Summary{}

	facultyIDs, err := imp.commitFaculty(ctx, res, dept, summary)
	if err != nil {
		return summary, err
	}

	courses, err := imp.commitCourses(ctx, res, dept, facultyIDs, summary)
	if err != nil {
		return summary, err
	}

	students, err := imp.commitStudents(ctx, res, dept, summary)
	if err != nil {
		return summary, err
	}

	if err = imp.synthesizeEnrollments(ctx, res, students, courses, summary); err != nil {
		return summary, err
	}

	if err = imp.seedAttendance(ctx, res, students, courses, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (imp *Importer) commitFaculty(ctx context.Context, res *roster.ParseResult, dept string, summary *Summary) (map[string]string, error) {
	ids := make(map[string]string, len(res.Faculty))

	err := imp.inTx(ctx, func(tx core.DBTransactor) error {
		items := make([]people.NewFaculty, 0, len(res.Faculty))
		for _, fac := range res.Faculty {
			items = append(items, people.NewFaculty{FullName: fac.Name, Department: dept})
		}
		batch := imp.faculty.UpsertBatch(ctx, items, tx)
		summary.FacultyAdded += batch.Added
		summary.FacultyUpdated += batch.Updated
		collectSkips(summary, "faculty", batch.Errors)

		for _, p := range batch.Resolved {
			ids[p.FullName] = p.ID
		}
		return nil
	})
	return ids, errors.Wrap(err, "reconciling faculty")
}

func (imp *Importer) commitCourses(ctx context.Context, res *roster.ParseResult, dept string, facultyIDs map[string]string, summary *Summary) (map[string]course.Course, error) {
	resolved := make(map[string]course.Course, len(res.Subjects))

	err := imp.inTx(ctx, func(tx core.DBTransactor) error {
		items := make([]course.NewCourse, 0, len(res.Subjects))
		for _, subj := range res.Subjects {
			items = append(items, course.NewCourse{
				Code:          subj.SubjectCode,
				ShortCode:     subj.ShortCode,
				Name:          subj.SubjectName,
				Type:          subj.SubjectType,
				ElectiveGroup: subj.ElectiveGroup,
				Department:    dept,
				Year:          subj.Year,
				Semester:      subj.Semester,
				AcademicYear:  subj.AcademicYear,
				FacultyID:     facultyIDs[core.CollapseSpaces(subj.FacultyName)],
			})
		}
		batch := imp.courses.UpsertBatch(ctx, items, tx)
		summary.CoursesAdded += batch.Added
		summary.CoursesUpdated += batch.Updated
		collectCourseSkips(summary, batch.Errors)

		for code, c := range batch.Resolved {
			resolved[code] = c
		}
		return nil
	})
	return resolved, errors.Wrap(err, "reconciling courses")
}

func (imp *Importer) commitStudents(ctx context.Context, res *roster.ParseResult, dept string, summary *Summary) (map[string]people.Person, error) {
	resolved := make(map[string]people.Person, len(res.Students)*2)

	err := imp.inTx(ctx, func(tx core.DBTransactor) error {
		items := make([]people.NewStudent, 0, len(res.Students))
		for _, st := range res.Students {
			items = append(items, people.NewStudent{
				FullName:   st.Name,
				HallTicket: st.HallTicket,
				Mobile:     st.Mobile,
				Department: dept,
				Year:       res.Metadata.Year,
				Semester:   res.Metadata.Semester,
				Section:    res.Metadata.Section,
			})
		}
		batch := imp.students.UpsertBatch(ctx, items, tx)
		summary.StudentsAdded += batch.Added
		summary.StudentsUpdated += batch.Updated
		collectSkips(summary, "student", batch.Errors)

		for _, p := range batch.Resolved {
			if p.RollNumber != "" {
				resolved[p.RollNumber] = p
			}
			resolved[p.FullName] = p
		}
		return nil
	})
	return resolved, errors.Wrap(err, "reconciling students")
}

// resolvePerson finds the persisted profile for an extracted student
// by hall ticket first, then cleaned name.
func resolvePerson(students map[string]people.Person, st roster.Student) (people.Person, bool) {
	if st.HallTicket != "" {
		if p, ok := students[st.HallTicket]; ok {
			return p, true
		}
	}
	p, ok := students[core.CollapseSpaces(st.Name)]
	return p, ok
}

func (imp *Importer) inTx(ctx context.Context, fn func(tx core.DBTransactor) error) error {
	tx, err := imp.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func collectSkips(summary *Summary, entity string, errs []people.RowError) {
	for _, re := range errs {
		summary.Skipped = append(summary.Skipped, SkippedRow{Entity: entity, Key: re.Key, Reason: re.Reason})
	}
}

func collectCourseSkips(summary *Summary, errs []course.RowError) {
	for _, re := range errs {
		summary.Skipped = append(summary.Skipped, SkippedRow{Entity: "course", Key: re.Key, Reason: re.Reason})
	}
}
