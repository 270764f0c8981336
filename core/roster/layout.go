package roster

// Layout is the spreadsheet convention a Grid follows.
type Layout string

const (
	// LayoutBanded stacks several header rows (codes, short codes,
	// faculty) with one column per subject.
	LayoutBanded Layout = "banded"
	// LayoutTabular lists one row per subject under named header columns.
	LayoutTabular Layout = "tabular"
)

const (
	layoutScanRows    = 20 // rows inspected for a subject-table header
	layoutLookahead   = 8  // rows inspected below the header for subject data
	subjectTableIndex = 500
)

// DetectLayout classifies the Grid as Tabular or Banded.
//
// A Tabular sheet announces itself with a header row naming a subject
// code column plus a short code or faculty column, followed shortly by
// indexed data rows containing course codes. A student-table header in
// that window means the match was a false positive (the "subject table"
// was the banded student matrix) and the sheet is Banded. Anything
// else defaults to Banded; banded anchor location failures surface
// later as LayoutError.
func DetectLayout(g Grid) Layout {
	maxRow := g.NumRows()
	if maxRow > layoutScanRows {
		maxRow = layoutScanRows
	}

	for row := 0; row < maxRow; row++ {
		if !rowHasToken(g, row, isSubjectCodeHeader) {
			continue
		}
		if !rowHasToken(g, row, isShortCodeHeader) && !rowHasToken(g, row, isFacultyHeader) {
			continue
		}

		// candidate header; confirm with data rows below
		end := row + 1 + layoutLookahead
		if end > g.NumRows() {
			end = g.NumRows()
		}
		for next := row + 1; next < end; next++ {
			if isStudentHeaderRow(g, next) {
				// the "subject table" was actually the student matrix
				break
			}
			if rowStartsWithIndex(g, next) && rowHasToken(g, next, isSubjectCode) {
				return LayoutTabular
			}
		}
	}
	return LayoutBanded
}

// rowStartsWithIndex reports whether the row's first non-empty cell is
// a small numeric index ("1", "2", ...).
func rowStartsWithIndex(g Grid, row int) bool {
	for col := 0; col < g.RowWidth(row); col++ {
		txt := g.Text(row, col)
		if txt == "" {
			continue
		}
		n, ok := CellInt(g.Cell(row, col))
		return ok && n >= 0 && n < subjectTableIndex
	}
	return false
}
