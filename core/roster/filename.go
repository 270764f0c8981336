package roster

import (
	"path/filepath"
	"strings"
)

// FilenameHints are year/semester/academic-year values recovered from
// an uploaded file's name ("ECE 4th Year Sem-II 2023-24.xlsx"). When
// present they take precedence over in-sheet metadata: office staff
// name files more carefully than they format heading rows.
type FilenameHints struct {
	Year         int
	Semester     int
	AcademicYear string
}

// ParseFilenameHints extracts hints from a filename or upload hint string.
func ParseFilenameHints(name string) FilenameHints {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("_", " ", ".", " ").Replace(base)

	return FilenameHints{
		Year:         parseYearToken(base),
		Semester:     parseSemesterToken(base),
		AcademicYear: parseAcademicYearToken(base),
	}
}

// Apply overrides the metadata's year, semester and academic year with
// any hint values present.
func (h FilenameHints) Apply(md *Metadata) {
	if h.Year > 0 {
		md.Year = h.Year
	}
	if h.Semester > 0 {
		md.Semester = h.Semester
	}
	if h.AcademicYear != "" {
		md.AcademicYear = h.AcademicYear
	}
}
