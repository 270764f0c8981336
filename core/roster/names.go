package roster

import (
	"regexp"
	"strings"
)

// NameValidator decides whether a raw cell value is a person's display
// name. It is a strategy so the rules can be swapped without touching
// row scanning.
type NameValidator interface {
	IsPersonName(s string) bool
}

type facultyNameValidator struct{}

// DefaultNameValidator returns the validator tuned for the faculty
// rows observed in department rosters.
func DefaultNameValidator() NameValidator {
	return facultyNameValidator{}
}

var (
	pureDigitsRegex  = regexp.MustCompile(`^[0-9]+$`)
	facultyCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)
	nameShapeRegex   = regexp.MustCompile(`^[A-Za-z][A-Za-z .]*$`)

	titlePrefixes = []string{"DR.", "DR ", "PROF.", "PROF ", "MR.", "MR ", "MRS.", "MRS ", "MS.", "MS "}

	// structural tokens that show up in faculty-row cells
	structuralTokens = map[string]bool{
		"THEORY": true, "PRACTICAL": true, "CODE": true, "TYPE": true,
		"ELECTIVE": true, "GROUP": true, "T.C": true, "T.A": true, "E.A": true, "%": true,
	}
)

// IsPersonName rejects digits, course codes, structural table tokens
// and short all-caps abbreviations, and accepts letter/space/dot
// strings that carry a space or a title prefix.
func (facultyNameValidator) IsPersonName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	upper := strings.ToUpper(s)
	if structuralTokens[upper] ||
		strings.HasPrefix(upper, "TOTAL") || strings.HasPrefix(upper, "ATTENDANCE") {
		return false
	}
	if pureDigitsRegex.MatchString(s) {
		return false
	}
	if facultyCodeRegex.MatchString(s) && digitsRe.MatchString(upper) {
		return false
	}
	// short all-caps token with no space ("TC", "SEM", "HOD")
	if len(s) <= 5 && upper == s && !strings.Contains(s, " ") {
		return false
	}

	if !nameShapeRegex.MatchString(s) {
		return false
	}
	if strings.Contains(s, " ") {
		return true
	}
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
