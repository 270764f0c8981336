package roster

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	programRegex = regexp.MustCompile(`(?i)program(?:me)?\s*[:\-]\s*([A-Za-z. ]+)`)
	branchRegex  = regexp.MustCompile(`(?i)(?:branch|department)\s*[:\-]\s*([A-Za-z&. ]+)`)
	yearRegex    = regexp.MustCompile(`(?i)\b(I{1,3}V?|IV|[1-4])(?:st|nd|rd|th)?[\s\-]*(?:B\.? ?TECH +)?year\b`)
	semRegex     = regexp.MustCompile(`(?i)\bsem(?:ester)?[\s\-:]*([1-2]|I{1,2})\b|\b([1-2]|I{1,2})[\s\-]*sem(?:ester)?\b`)
	sectionRegex = regexp.MustCompile(`(?i)\bsec(?:tion)?\s*[:\-]?\s*([A-D])\b`)
	acadYrRegex  = regexp.MustCompile(`\b(20\d{2})\s*[-/]\s*(\d{2}|\d{4})\b`)
	dateRegex    = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{4}\b|\b\d{4}-\d{2}-\d{2}\b`)

	dateLayouts = []string{"02-01-2006", "02/01/2006", "02.01.2006", "2006-01-02", "2-1-2006", "2/1/2006"}

	romanNumerals = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6, "VII": 7, "VIII": 8}
)

// matrixWindow is the resolved geometry of the banded student table:
// the identity columns plus the attendance-matrix column range
// [StartCol, EndCol) and the optional aggregate columns.
type matrixWindow struct {
	HallTicketCol int
	NameCol       int
	MobileCol     int
	StartCol      int
	EndCol        int
	TotalCol      int
	AttendedCol   int
	PercentCol    int
}

// ExtractMetadata reads the sheet-level metadata off the located
// metadata row. Missing anchors yield a zero Metadata; the caller
// decides (after filename fallback) whether that is fatal.
func ExtractMetadata(g Grid, a Anchors) Metadata {
	var md Metadata
	if a.MetadataRow < 0 {
		return md
	}

	for col := 0; col < g.RowWidth(a.MetadataRow); col++ {
		txt := g.Text(a.MetadataRow, col)
		if txt == "" {
			continue
		}
		if m := programRegex.FindStringSubmatch(txt); m != nil && md.Program == "" {
			md.Program = strings.TrimSpace(m[1])
		}
		if m := branchRegex.FindStringSubmatch(txt); m != nil && md.Department == "" {
			md.Department = strings.TrimSpace(m[1])
		}
		if md.Year == 0 {
			md.Year = parseYearToken(txt)
		}
		if md.Semester == 0 {
			md.Semester = parseSemesterToken(txt)
		}
		if m := sectionRegex.FindStringSubmatch(txt); m != nil && md.Section == "" {
			md.Section = strings.ToUpper(m[1])
		}
		if md.AcademicYear == "" {
			md.AcademicYear = parseAcademicYearToken(txt)
		}
		if md.FromDate.IsZero() || md.ToDate.IsZero() {
			md.FromDate, md.ToDate = pickDates(txt, md.FromDate, md.ToDate)
		}
	}

	// adjacent-cell fallback: "PROGRAM" | "B.Tech"
	if md.Program == "" {
		if col := rowFindToken(g, a.MetadataRow, isProgramToken); col >= 0 {
			md.Program = g.Text(a.MetadataRow, col+1)
		}
	}
	if md.Department == "" {
		if col := rowFindToken(g, a.MetadataRow, isBranchToken); col >= 0 {
			md.Department = g.Text(a.MetadataRow, col+1)
		}
	}

	if md.AcademicYear == "" && !md.FromDate.IsZero() {
		md.AcademicYear = AcademicYearOf(md.FromDate)
	}
	return md
}

// ExtractSubjects builds one Subject per attendance-matrix column from
// the aligned cells of the located header rows.
func ExtractSubjects(g Grid, a Anchors, nv NameValidator) []Subject {
	win := locateMatrixWindow(g, a)
	subjects := make([]Subject, 0, win.EndCol-win.StartCol)

	for col := win.StartCol; col < win.EndCol; col++ {
		code := tight(g.Text(a.SubjectCodeRow, col))
		if len(code) < 3 {
			continue
		}

		subj := Subject{
			SubjectCode: code,
			ShortCode:   g.Text(a.ShortCodeRow, col),
			SubjectType: SubjectTheory,
			ColumnIndex: col,
		}

		typeCell := ""
		if a.SubjectTypeRow >= 0 {
			typeCell = g.Text(a.SubjectTypeRow, col)
		}
		if a.SubjectNameRow >= 0 {
			subj.SubjectName = g.Text(a.SubjectNameRow, col)
		}
		if a.SubjectNameRow == a.SubjectTypeRow && a.SubjectNameRow >= 0 {
			// the type row was reinterpreted as names; only a closed
			// vocabulary cell still carries a usable type
			if isSubjectTypeVocab(typeCell) {
				subj.SubjectType = subjectTypeOf(typeCell)
				subj.SubjectName = ""
			}
		} else if typeCell != "" {
			subj.SubjectType = subjectTypeOf(typeCell)
		}

		if a.ElectiveRow >= 0 {
			subj.ElectiveGroup = g.Text(a.ElectiveRow, col)
		}
		if a.FacultyRow >= 0 {
			if name := g.Text(a.FacultyRow, col); nv.IsPersonName(name) {
				subj.FacultyName = name
			}
		}
		subjects = append(subjects, subj)
	}
	return subjects
}

// ExtractStudents walks rows below the student header until the first
// row with neither hall ticket nor name, reading identity columns and
// the per-subject attendance counts.
func ExtractStudents(g Grid, a Anchors, subjects []Subject) []Student {
	win := locateMatrixWindow(g, a)
	var students []Student

	for row := a.StudentHeaderRow + 1; row < g.NumRows(); row++ {
		ht := g.Text(row, win.HallTicketCol)
		name := g.Text(row, win.NameCol)
		if ht == "" && name == "" {
			break
		}

		st := Student{
			Name:       name,
			HallTicket: ht,
			Attendance: make(map[string]int, len(subjects)),
		}
		if win.MobileCol >= 0 {
			st.Mobile = g.Text(row, win.MobileCol)
		}

		for _, subj := range subjects {
			if subj.ColumnIndex < 0 {
				continue
			}
			if n, ok := CellInt(g.Cell(row, subj.ColumnIndex)); ok {
				st.Attendance[subj.SubjectCode] = n
			}
		}

		if win.TotalCol >= 0 {
			if n, ok := CellInt(g.Cell(row, win.TotalCol)); ok {
				st.TotalClasses = &n
			}
		}
		if win.AttendedCol >= 0 {
			if n, ok := CellInt(g.Cell(row, win.AttendedCol)); ok {
				st.TotalAttended = &n
			}
		}
		if win.PercentCol >= 0 {
			if f, ok := CellFloat(g.Cell(row, win.PercentCol)); ok {
				st.Percentage = &f
			}
		}

		students = append(students, st)
	}
	return students
}

// DeriveFaculty groups subjects by their accepted faculty name.
func DeriveFaculty(subjects []Subject) []Faculty {
	byName := make(map[string]*Faculty)
	var order []string

	for _, subj := range subjects {
		if subj.FacultyName == "" {
			continue
		}
		fac, ok := byName[subj.FacultyName]
		if !ok {
			fac = &Faculty{Name: subj.FacultyName}
			byName[subj.FacultyName] = fac
			order = append(order, subj.FacultyName)
		}
		fac.SubjectCodes = append(fac.SubjectCodes, subj.SubjectCode)
	}

	faculty := make([]Faculty, 0, len(order))
	for _, name := range order {
		faculty = append(faculty, *byName[name])
	}
	return faculty
}

// locateMatrixWindow resolves the student-table columns off the header
// row. The attendance matrix starts one past the mobile column (or the
// name column when no mobile column exists) and ends at the first
// total-classes column after it.
func locateMatrixWindow(g Grid, a Anchors) matrixWindow {
	win := matrixWindow{
		HallTicketCol: rowFindToken(g, a.StudentHeaderRow, isHallTicketHeader),
		NameCol:       rowFindToken(g, a.StudentHeaderRow, isNameHeader),
		MobileCol:     rowFindToken(g, a.StudentHeaderRow, isMobileHeader),
		TotalCol:      -1,
		AttendedCol:   -1,
		PercentCol:    -1,
	}
	if win.HallTicketCol < 0 {
		win.HallTicketCol = 1
	}
	if win.NameCol < 0 {
		win.NameCol = win.HallTicketCol + 1
	}

	if win.MobileCol >= 0 {
		win.StartCol = win.MobileCol + 1
	} else {
		win.StartCol = win.NameCol + 1
	}

	width := g.RowWidth(a.StudentHeaderRow)
	if w := g.RowWidth(a.SubjectCodeRow); w > width {
		width = w
	}
	win.EndCol = width
	for col := win.StartCol; col < width; col++ {
		txt := g.Text(a.StudentHeaderRow, col)
		if txt == "" {
			continue
		}
		if isTotalClassesHeader(txt) {
			win.EndCol = col
			win.TotalCol = col
			break
		}
	}
	if win.TotalCol >= 0 {
		for col := win.TotalCol; col < g.RowWidth(a.StudentHeaderRow); col++ {
			txt := g.Text(a.StudentHeaderRow, col)
			switch {
			case isTotalAttendedHeader(txt):
				win.AttendedCol = col
			case isPercentageHeader(txt):
				win.PercentCol = col
			}
		}
	}
	return win
}

func subjectTypeOf(cell string) string {
	switch tight(cell) {
	case "THEORY":
		return SubjectTheory
	case "PRACTICAL", "LAB":
		return SubjectPractical
	case "PROJECT":
		return SubjectProject
	case "":
		return SubjectTheory
	default:
		return SubjectOthers
	}
}

func parseYearToken(s string) int {
	m := yearRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return numeralOf(m[1])
}

func parseSemesterToken(s string) int {
	m := semRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	tok := m[1]
	if tok == "" {
		tok = m[2]
	}
	return numeralOf(tok)
}

func numeralOf(tok string) int {
	tok = strings.ToUpper(strings.TrimSpace(tok))
	if n, ok := romanNumerals[tok]; ok {
		return n
	}
	if len(tok) == 1 && tok[0] >= '1' && tok[0] <= '8' {
		return int(tok[0] - '0')
	}
	return 0
}

func parseAcademicYearToken(s string) string {
	m := acadYrRegex.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	start := m[1]
	end := m[2]
	if len(end) == 4 {
		end = end[2:]
	}
	return start + "-" + end
}

func pickDates(s string, from, to time.Time) (time.Time, time.Time) {
	for _, raw := range dateRegex.FindAllString(s, -1) {
		t, ok := parseDate(raw)
		if !ok {
			continue
		}
		switch {
		case from.IsZero():
			from = t
		case to.IsZero() && t.After(from):
			to = t
		}
	}
	return from, to
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatAcademicYear(start, end int) string {
	return fmt.Sprintf("%d-%02d", start, end)
}
