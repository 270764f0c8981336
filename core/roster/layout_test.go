package roster

import "testing"

func bandedGrid() Grid {
	return Grid{
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

func tabularGrid() Grid {
	return Grid{
		{"Program : B.Tech", "Branch : CSE"},
		{"S.No", "Subject Code", "Short Code", "Subject Name", "Faculty Name"},
		{"1", "22CS301", "CS301", "Operating Systems", "Dr. K Mohan"},
		{"2", "22CS302", "CS302", "Database Systems", "Mrs. L Devi"},
		{},
		{"S.No", "H.T.No", "Student Name", "CS301", "CS302", "T.C"},
		{"1", "22CS0001", "A Kumar", "40", "39", "45"},
	}
}

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want Layout
	}{
		{name: "banded sheet", grid: bandedGrid(), want: LayoutBanded},
		{name: "tabular sheet", grid: tabularGrid(), want: LayoutTabular},
		{name: "empty grid", grid: Grid{}, want: LayoutBanded},
		{
			// a header naming subject code and faculty immediately over
			// the student matrix is the banded convention, not a subject table
			name: "student matrix under code header",
			grid: Grid{
				{"Subject Code", "Faculty"},
				{"S.No", "Hall Ticket No", "Name"},
				{"1", "22EC0001", "K Ramesh"},
			},
			want: LayoutBanded,
		},
		{
			name: "code header without data rows",
			grid: Grid{
				{"Subject Code", "Short Code"},
				{"nothing here"},
			},
			want: LayoutBanded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLayout(tt.grid); got != tt.want {
				t.Errorf("DetectLayout() = %v, want %v", got, tt.want)
			}
		})
	}
}
