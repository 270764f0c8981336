package testutil

import (
	"strings"

	"github.com/vidyalabs/vidya/core/roster"
)

// BandedRosterGrid is a department attendance sheet in the banded
// convention: stacked subject header rows over a student matrix.
func BandedRosterGrid() roster.Grid {
	return roster.Grid{
		{"SVIT College of Engineering"},
		{"Program : B.Tech", "Branch : ECE", "III Year", "Sem - I", "Section : A", "01-08-2023 to 30-11-2023"},
		{"Elective Group", "", "", "", "", "", "Elective-I"},
		{"Subject Type", "", "", "", "Theory", "Theory", "Practical"},
		{"Subject Code", "", "", "", "22EC301", "22EC302", "22EC351"},
		{"Short Code", "", "", "", "EC301", "EC302", "EC351"},
		{"Subject Name", "", "", "", "Digital Signal Processing", "VLSI Design", "DSP Lab"},
		{"Faculty", "", "", "", "Dr. A Sharma", "P Srinivas Rao", "Dr. A Sharma"},
		{"S.No", "Hall Ticket No", "Name of the Student", "Mobile No", "EC301", "EC302", "EC351", "T.C", "T.A", "%"},
		{"1", "22EC0001", "K Ramesh", "9876543210", "36", "38", "35", "40", "38", "90"},
		{"2", "22EC0002", "S Priya", "9876500000", "42", "41", "", "45", "42", "93.3"},
	}
}

// BandedRosterGridNoDates is the same sheet without the date range, so
// attendance seeding has no time anchor.
func BandedRosterGridNoDates() roster.Grid {
	g := BandedRosterGrid()
	g[1] = []interface{}{"Program : B.Tech", "Branch : ECE", "III Year", "Sem - I", "Section : A"}
	return g
}

// TabularRosterGrid lists one row per subject under named header
// columns, followed by a small student matrix.
func TabularRosterGrid() roster.Grid {
	return roster.Grid{
		{"Program : B.Tech", "Branch : CSE"},
		{"S.No", "Subject Code", "Short Code", "Subject Name", "Faculty Name"},
		{"1", "22CS301", "CS301", "Operating Systems", "Dr. K Mohan"},
		{"2", "22CS302", "CS302", "Database Systems", "Mrs. L Devi"},
		{},
		{"S.No", "H.T.No", "Student Name", "CS301", "CS302", "T.C"},
		{"1", "22CS0001", "A Kumar", "40", "39", "45"},
	}
}

// GridCSV renders a grid as CSV text for upload tests. Cells must not
// contain commas.
func GridCSV(g roster.Grid) string {
	var b strings.Builder
	for _, row := range g {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, roster.CellText(cell))
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}
