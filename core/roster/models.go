package roster

import "time"

// Subject types
const (
	SubjectTheory    = "Theory"
	SubjectPractical = "Practical"
	SubjectProject   = "Project"
	SubjectOthers    = "Others"
)

type (
	// Metadata is the sheet-level context extracted from the roster's
	// heading rows, optionally overridden by filename hints.
	Metadata struct {
		Program      string    `json:"program"`
		Department   string    `json:"department"`
		Semester     int       `json:"semester,omitempty"`
		Year         int       `json:"year,omitempty"`
		Section      string    `json:"section,omitempty"`
		FromDate     time.Time `json:"from_date,omitempty"`
		ToDate       time.Time `json:"to_date,omitempty"`
		AcademicYear string    `json:"academic_year,omitempty"`
	}

	// Subject is one logical course column (Banded) or row (Tabular).
	// ColumnIndex is the subject's column in the attendance matrix;
	// -1 when the layout carries no matrix alignment.
	Subject struct {
		SubjectCode   string `json:"subject_code"`
		ShortCode     string `json:"short_code,omitempty"`
		SubjectName   string `json:"subject_name,omitempty"`
		SubjectType   string `json:"subject_type,omitempty"`
		ElectiveGroup string `json:"elective_group,omitempty"`
		FacultyName   string `json:"faculty_name,omitempty"`
		Year          int    `json:"year,omitempty"`
		Semester      int    `json:"semester,omitempty"`
		AcademicYear  string `json:"academic_year,omitempty"`
		ColumnIndex   int    `json:"column_index"`
	}

	// Student is one data row of the student table. Attendance maps
	// subject code to classes attended; subjects with no readable count
	// are absent from the map, never zero.
	Student struct {
		Name          string         `json:"name"`
		HallTicket    string         `json:"hall_ticket,omitempty"`
		Mobile        string         `json:"mobile,omitempty"`
		Attendance    map[string]int `json:"attendance"`
		TotalClasses  *int           `json:"total_classes,omitempty"`
		TotalAttended *int           `json:"total_attended,omitempty"`
		Percentage    *float64       `json:"percentage,omitempty"`
	}

	// Faculty is derived from the distinct name-shaped FacultyName
	// values across all subjects.
	Faculty struct {
		Name         string   `json:"name"`
		SubjectCodes []string `json:"subject_codes"`
	}

	// ParseResult is the pure preview-stage output.
	ParseResult struct {
		Layout   Layout    `json:"layout"`
		Metadata Metadata  `json:"metadata"`
		Subjects []Subject `json:"subjects"`
		Students []Student `json:"students"`
		Faculty  []Faculty `json:"faculty"`
	}
)

// AcademicYearOf formats the academic year a date falls in; the year
// rolls over in June ("2024-25").
func AcademicYearOf(t time.Time) string {
	y := t.Year()
	if t.Month() < time.June {
		y--
	}
	next := (y + 1) % 100
	return formatAcademicYear(y, next)
}
