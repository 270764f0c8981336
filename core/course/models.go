package course

import (
	"time"

	"github.com/vidyalabs/vidya/core"
)

// Course is a persistent offering. Uniqueness is (code, department,
// year); a stored NULL year matches any incoming year.
type Course struct {
	ID            string    `json:"id" db:"id"`
	Code          string    `json:"code" db:"code"`
	ShortCode     string    `json:"short_code,omitempty" db:"short_code"`
	Name          string    `json:"name,omitempty" db:"name"`
	Type          string    `json:"type,omitempty" db:"type"`
	ElectiveGroup string    `json:"elective_group,omitempty" db:"elective_group"`
	Department    string    `json:"department" db:"department"`
	Year          int       `json:"year,omitempty" db:"year"` // 0 = unknown, stored NULL
	Semester      int       `json:"semester,omitempty" db:"semester"`
	AcademicYear  string    `json:"academic_year,omitempty" db:"academic_year"`
	FacultyID     string    `json:"faculty_id,omitempty" db:"faculty_id"` // empty = unassigned
	CreatedAt     time.Time `json:"created_at" db:"created_at"`           // UTC
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`           // UTC
}

// Enrollment is a student-course edge; the pair is unique.
type Enrollment struct {
	StudentID string `json:"student_id" db:"student_id"`
	CourseID  string `json:"course_id" db:"course_id"`
}

// AttendanceSummary is the per-student-per-course-per-month aggregate.
// (StudentID, CourseID, Month, Year) is unique; repeated commits update
// the counts in place.
type AttendanceSummary struct {
	ID              string   `json:"id" db:"id"`
	StudentID       string   `json:"student_id" db:"student_id"`
	CourseID        string   `json:"course_id" db:"course_id"`
	Month           int      `json:"month" db:"month"`
	Year            int      `json:"year" db:"year"`
	AttendedClasses int      `json:"attended_classes" db:"attended_classes"`
	TotalClasses    *int     `json:"total_classes,omitempty" db:"total_classes"`
	Percentage      *float64 `json:"percentage,omitempty" db:"percentage"`
}

// NewCourse carries an extracted subject into the upsert service.
type NewCourse struct {
	Code          string `json:"code" validate:"required,subjectcode"`
	ShortCode     string `json:"short_code"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	ElectiveGroup string `json:"elective_group"`
	Department    string `json:"department" validate:"required"`
	Year          int    `json:"year"`
	Semester      int    `json:"semester"`
	AcademicYear  string `json:"academic_year"`
	FacultyID     string `json:"faculty_id"`
}

// Validate cleans the subject in place and checks its constraints.
func (nc *NewCourse) Validate() error {
	nc.Code = core.CleanString(nc.Code)
	nc.Department = core.CleanString(nc.Department)
	return core.Validate.Struct(nc)
}
