package roster

// Anchors holds the row indices that align Banded extraction.
// A value of -1 means the anchor is absent; only SubjectCodeRow and
// StudentHeaderRow are required for extraction to proceed.
type Anchors struct {
	MetadataRow      int
	SubjectTypeRow   int
	ElectiveRow      int
	SubjectCodeRow   int
	ShortCodeRow     int
	SubjectNameRow   int
	FacultyRow       int
	StudentHeaderRow int
}

const (
	metadataScanRows    = 10
	subjectTypeScanRows = 20
	electiveScanRows    = 25
	subjectCodeScanRows = 30
)

// LocateBandedAnchors runs the ordered locator pipeline. Each locator
// takes the Grid plus previously resolved anchors and returns a row
// index or -1; required anchors that stay unresolved fail with a
// LayoutError naming the missing anchor.
func LocateBandedAnchors(g Grid, nv NameValidator) (Anchors, error) {
	a := Anchors{
		MetadataRow:      locateMetadataRow(g),
		SubjectTypeRow:   locateSubjectTypeRow(g),
		ElectiveRow:      locateElectiveRow(g),
		SubjectCodeRow:   -1,
		ShortCodeRow:     -1,
		SubjectNameRow:   -1,
		FacultyRow:       -1,
		StudentHeaderRow: -1,
	}

	a.SubjectCodeRow = locateSubjectCodeRow(g, a)
	if a.SubjectCodeRow < 0 {
		return a, NewLayoutError("subject code row")
	}
	a.ShortCodeRow = a.SubjectCodeRow + 1 // positional, not content-matched

	a.StudentHeaderRow = locateStudentHeaderRow(g, a.ShortCodeRow+1)
	if a.StudentHeaderRow < 0 {
		return a, NewLayoutError("student table header")
	}

	a.SubjectNameRow = locateSubjectNameRow(g, a)
	a.FacultyRow = locateFacultyRow(g, a, nv)
	return a, nil
}

// locateMetadataRow finds the first heading row naming both the program
// and the branch.
func locateMetadataRow(g Grid) int {
	return scanRows(g, 0, metadataScanRows, func(row int) bool {
		return rowHasToken(g, row, isProgramToken) && rowHasToken(g, row, isBranchToken)
	})
}

// locateSubjectTypeRow finds the first row carrying a theory/practical
// or explicit subject-type token.
func locateSubjectTypeRow(g Grid) int {
	return scanRows(g, 0, subjectTypeScanRows, func(row int) bool {
		return rowHasToken(g, row, isSubjectTypeToken)
	})
}

func locateElectiveRow(g Grid) int {
	return scanRows(g, 0, electiveScanRows, func(row int) bool {
		return rowHasToken(g, row, isElectiveToken)
	})
}

// locateSubjectCodeRow finds the first row below the metadata anchor in
// which some cell matches the course-code pattern.
func locateSubjectCodeRow(g Grid, a Anchors) int {
	from := 0
	if a.MetadataRow >= 0 {
		from = a.MetadataRow + 1
	}
	return scanRows(g, from, from+subjectCodeScanRows, func(row int) bool {
		return rowHasToken(g, row, isSubjectCode)
	})
}

// locateSubjectNameRow resolves where subject display names live.
// When the "type" row carries long free text instead of the closed
// {Theory, Practical, Lab, Tutorial, Project} vocabulary it doubles as
// the name row. Otherwise the row after the short-code row is taken if
// its cells read as free-text names rather than a student header.
func locateSubjectNameRow(g Grid, a Anchors) int {
	if a.SubjectTypeRow >= 0 && !rowIsClosedTypeVocab(g, a.SubjectTypeRow) {
		return a.SubjectTypeRow
	}

	after := a.ShortCodeRow + 1
	if after >= g.NumRows() || isStudentHeaderRow(g, after) {
		return -1
	}
	if rowLooksLikeFreeText(g, after) {
		return after
	}
	return -1
}

// locateFacultyRow accepts the row immediately after the short-code row
// only if its cells look name-shaped. When the subject-name row already
// claimed that row, the faculty row shifts one further down.
func locateFacultyRow(g Grid, a Anchors, nv NameValidator) int {
	row := a.ShortCodeRow + 1
	if a.SubjectNameRow == row {
		row++
	}
	if row >= g.NumRows() || row >= a.StudentHeaderRow {
		return -1
	}
	if isStudentHeaderRow(g, row) {
		return -1
	}
	if rowLooksLikeFacultyNames(g, row, nv) {
		return row
	}
	return -1
}

// locateStudentHeaderRow finds the first row at or below `from` with
// the student-table header signature.
func locateStudentHeaderRow(g Grid, from int) int {
	return scanRows(g, from, g.NumRows(), func(row int) bool {
		return isStudentHeaderRow(g, row)
	})
}

// scanRows walks rows [from, to) and returns the first for which pred
// holds, or -1. Bounds are clamped to the grid.
func scanRows(g Grid, from, to int, pred func(row int) bool) int {
	if from < 0 {
		from = 0
	}
	if to > g.NumRows() {
		to = g.NumRows()
	}
	for row := from; row < to; row++ {
		if pred(row) {
			return row
		}
	}
	return -1
}

// rowIsClosedTypeVocab reports whether every non-empty cell of the row
// belongs to the closed subject-type vocabulary.
func rowIsClosedTypeVocab(g Grid, row int) bool {
	var seen bool
	for col := 0; col < g.RowWidth(row); col++ {
		txt := g.Text(row, col)
		if txt == "" {
			continue
		}
		seen = true
		if !isSubjectTypeVocab(txt) && !isSubjectTypeToken(txt) {
			return false
		}
	}
	return seen
}

// rowLooksLikeFreeText accepts rows whose non-empty cells are longer
// prose (subject names) rather than codes, counts or type vocabulary.
func rowLooksLikeFreeText(g Grid, row int) bool {
	var candidates, freeText int
	for col := 0; col < g.RowWidth(row); col++ {
		txt := g.Text(row, col)
		if txt == "" {
			continue
		}
		candidates++
		if isSubjectCode(txt) || isSubjectTypeVocab(txt) {
			continue
		}
		if _, numeric := CellInt(g.Cell(row, col)); numeric {
			continue
		}
		if len(txt) > 5 {
			freeText++
		}
	}
	return candidates > 0 && freeText*2 > candidates
}

// rowLooksLikeFacultyNames requires at least one cell the name
// validator accepts and no cell it positively rejects as a structural
// token or code.
func rowLooksLikeFacultyNames(g Grid, row int, nv NameValidator) bool {
	var names int
	for col := 0; col < g.RowWidth(row); col++ {
		txt := g.Text(row, col)
		if txt == "" {
			continue
		}
		if nv.IsPersonName(txt) {
			names++
		}
	}
	return names > 0
}
