package roster

// TabularAnchors holds the header row of a one-row-per-subject table
// plus the resolved column index of every named field (-1 when the
// header does not carry it).
type TabularAnchors struct {
	HeaderRow  int
	CodeCol    int
	ShortCol   int
	NameCol    int
	TypeCol    int
	FacultyCol int
}

// LocateTabularHeader finds the subject-table header row and resolves
// its columns by header cell text.
func LocateTabularHeader(g Grid) (TabularAnchors, error) {
	a := TabularAnchors{HeaderRow: -1, CodeCol: -1, ShortCol: -1, NameCol: -1, TypeCol: -1, FacultyCol: -1}

	a.HeaderRow = scanRows(g, 0, layoutScanRows, func(row int) bool {
		return rowHasToken(g, row, isSubjectCodeHeader)
	})
	if a.HeaderRow < 0 {
		return a, NewLayoutError("subject table header")
	}

	for col := 0; col < g.RowWidth(a.HeaderRow); col++ {
		txt := g.Text(a.HeaderRow, col)
		if txt == "" {
			continue
		}
		switch {
		case isSubjectCodeHeader(txt):
			a.CodeCol = col
		case isShortCodeHeader(txt):
			a.ShortCol = col
		case isFacultyHeader(txt):
			a.FacultyCol = col
		case isSubjectTypeToken(txt):
			a.TypeCol = col
		case isSubjectNameHeader(txt):
			a.NameCol = col
		}
	}
	if a.CodeCol < 0 {
		return a, NewLayoutError("subject code column")
	}
	return a, nil
}

// ExtractTabularSubjects reads subject rows below the header until a
// separator row, a row whose first cell is not a plausible index or
// code, or the student-table header, whichever comes first.
func ExtractTabularSubjects(g Grid, a TabularAnchors, nv NameValidator) []Subject {
	var subjects []Subject

	for row := a.HeaderRow + 1; row < g.NumRows(); row++ {
		if g.IsEmptyRow(row) {
			break
		}
		if isStudentHeaderRow(g, row) {
			break
		}
		if !rowStartsWithIndex(g, row) && !isSubjectCode(g.Text(row, a.CodeCol)) {
			break
		}

		code := tight(g.Text(row, a.CodeCol))
		if len(code) < 3 {
			continue
		}

		subj := Subject{
			SubjectCode: code,
			SubjectType: SubjectTheory,
			ColumnIndex: -1,
		}
		if a.ShortCol >= 0 {
			subj.ShortCode = g.Text(row, a.ShortCol)
		}
		if a.NameCol >= 0 {
			subj.SubjectName = g.Text(row, a.NameCol)
		}
		if a.TypeCol >= 0 {
			if cell := g.Text(row, a.TypeCol); cell != "" {
				subj.SubjectType = subjectTypeOf(cell)
			}
		}
		if a.FacultyCol >= 0 {
			if name := g.Text(row, a.FacultyCol); nv.IsPersonName(name) {
				subj.FacultyName = name
			}
		}
		subjects = append(subjects, subj)
	}
	return subjects
}

// AlignTabularSubjects matches a student-table header's matrix columns
// back onto tabular subjects by code or short code, so attendance can
// still be read when the sheet carries a student table below the
// subject table. Unmatched subjects keep ColumnIndex -1.
func AlignTabularSubjects(g Grid, headerRow int, subjects []Subject) {
	byCode := make(map[string]int, len(subjects)*2)
	for i, subj := range subjects {
		byCode[tight(subj.SubjectCode)] = i
		if subj.ShortCode != "" {
			byCode[tight(subj.ShortCode)] = i
		}
	}

	for col := 0; col < g.RowWidth(headerRow); col++ {
		txt := tight(g.Text(headerRow, col))
		if txt == "" {
			continue
		}
		if i, ok := byCode[txt]; ok && subjects[i].ColumnIndex < 0 {
			subjects[i].ColumnIndex = col
		}
	}
}
