package roster

import (
	"regexp"
	"strings"
)

// Header cells come in every spelling the office staff could invent
// ("S.No", "Sl. No", "Hall Ticket No", "HALLTICKET"). All token checks
// run on a tight form: uppercased with everything non-alphanumeric
// stripped, so "S.No" and "Sl No" both collapse to comparable text.
func tight(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	// alphanumeric course code, digits required ("22EC301PC")
	codeRegex = regexp.MustCompile(`^[A-Z0-9]{5,15}$`)
	digitsRe  = regexp.MustCompile(`[0-9]`)
	lettersRe = regexp.MustCompile(`[A-Z]`)

	// closed vocabulary of subject-type cells
	subjectTypeVocab = map[string]bool{
		"THEORY": true, "PRACTICAL": true, "LAB": true, "TUTORIAL": true, "PROJECT": true,
	}
)

func isSubjectCodeHeader(s string) bool {
	t := tight(s)
	return strings.Contains(t, "SUBJECTCODE") || strings.Contains(t, "SUBCODE") ||
		strings.Contains(t, "COURSECODE")
}

func isShortCodeHeader(s string) bool {
	return strings.Contains(tight(s), "SHORTCODE")
}

func isFacultyHeader(s string) bool {
	return strings.Contains(tight(s), "FACULTY")
}

func isSubjectNameHeader(s string) bool {
	t := tight(s)
	return strings.Contains(t, "SUBJECTNAME") || strings.Contains(t, "COURSENAME") ||
		t == "SUBJECT" || t == "COURSE"
}

func isIndexHeader(s string) bool {
	t := tight(s)
	return t == "SNO" || t == "SLNO" || t == "SL" || t == "NO" || strings.HasPrefix(t, "SNO") || strings.HasPrefix(t, "SLNO")
}

func isHallTicketHeader(s string) bool {
	t := tight(s)
	return strings.Contains(t, "HALLTICKET") || strings.Contains(t, "HTNO") || strings.Contains(t, "ROLLNO")
}

func isNameHeader(s string) bool {
	t := tight(s)
	return t == "NAME" || strings.Contains(t, "STUDENTNAME") || strings.Contains(t, "NAMEOFTHESTUDENT")
}

func isMobileHeader(s string) bool {
	t := tight(s)
	return strings.Contains(t, "MOBILE") || strings.Contains(t, "PHONE")
}

func isTotalClassesHeader(s string) bool {
	t := tight(s)
	return t == "TC" || strings.Contains(t, "TOTALCLASS")
}

func isTotalAttendedHeader(s string) bool {
	t := tight(s)
	return t == "TA" || strings.Contains(t, "TOTALATTEND") || strings.Contains(t, "CLASSESATTEND")
}

func isPercentageHeader(s string) bool {
	return strings.Contains(s, "%") || strings.Contains(tight(s), "PERCENT")
}

func isProgramToken(s string) bool {
	return strings.Contains(tight(s), "PROGRAM")
}

func isBranchToken(s string) bool {
	t := tight(s)
	return strings.Contains(t, "BRANCH") || strings.Contains(t, "DEPARTMENT")
}

func isElectiveToken(s string) bool {
	return strings.Contains(tight(s), "ELECTIVE")
}

// isSubjectTypeToken matches cells of the closed subject-type vocabulary
// or an explicit "Subject Type" header.
func isSubjectTypeToken(s string) bool {
	t := tight(s)
	return subjectTypeVocab[t] || strings.Contains(t, "SUBJECTTYPE")
}

func isSubjectTypeVocab(s string) bool {
	return subjectTypeVocab[tight(s)]
}

// isSubjectCode matches an alphanumeric course code of 5-15 chars
// carrying at least one digit and one letter ("22EC301PC").
func isSubjectCode(s string) bool {
	t := strings.ToUpper(strings.TrimSpace(s))
	return codeRegex.MatchString(t) && digitsRe.MatchString(t) && lettersRe.MatchString(t)
}

// isStudentHeaderRow reports whether the row carries the student-table
// header signature: an index column and a hall-ticket column.
func isStudentHeaderRow(g Grid, row int) bool {
	var hasIndex, hasTicket bool
	for col := 0; col < g.RowWidth(row); col++ {
		txt := g.Text(row, col)
		if txt == "" {
			continue
		}
		if isIndexHeader(txt) {
			hasIndex = true
		}
		if isHallTicketHeader(txt) {
			hasTicket = true
		}
	}
	return hasIndex && hasTicket
}

// rowHasToken scans every cell of the row with the given predicate.
func rowHasToken(g Grid, row int, pred func(string) bool) bool {
	return rowFindToken(g, row, pred) >= 0
}

// rowFindToken returns the first column whose cell matches the predicate, or -1.
func rowFindToken(g Grid, row int, pred func(string) bool) int {
	for col := 0; col < g.RowWidth(row); col++ {
		if txt := g.Text(row, col); txt != "" && pred(txt) {
			return col
		}
	}
	return -1
}
