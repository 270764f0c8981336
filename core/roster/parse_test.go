package roster

import (
	"strings"
	"testing"
)

func TestParser_Parse_banded(t *testing.T) {
	res, err := NewParser().Parse(bandedGrid(), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Layout != LayoutBanded {
		t.Errorf("Layout = %v, want %v", res.Layout, LayoutBanded)
	}
	if len(res.Subjects) != 3 {
		t.Fatalf("len(Subjects) = %d, want 3", len(res.Subjects))
	}
	if len(res.Students) != 2 {
		t.Errorf("len(Students) = %d, want 2", len(res.Students))
	}
	if len(res.Faculty) != 2 {
		t.Errorf("len(Faculty) = %d, want 2", len(res.Faculty))
	}

	// sheet context lands on every subject
	for i, subj := range res.Subjects {
		if subj.Year != 3 || subj.Semester != 1 || subj.AcademicYear != "2023-24" {
			t.Errorf("Subjects[%d] context = year %d sem %d ay %q", i, subj.Year, subj.Semester, subj.AcademicYear)
		}
	}
}

func TestParser_Parse_filenameHintsOverride(t *testing.T) {
	res, err := NewParser().Parse(bandedGrid(), "ECE_IV_Year_Sem-2_2024-25.xlsx")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if res.Metadata.Year != 4 {
		t.Errorf("Year = %d, want 4", res.Metadata.Year)
	}
	if res.Metadata.Semester != 2 {
		t.Errorf("Semester = %d, want 2", res.Metadata.Semester)
	}
	if res.Metadata.AcademicYear != "2024-25" {
		t.Errorf("AcademicYear = %q, want %q", res.Metadata.AcademicYear, "2024-25")
	}
}

func TestParser_Parse_tabular(t *testing.T) {
	res, err := NewParser().Parse(tabularGrid(), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Layout != LayoutTabular {
		t.Errorf("Layout = %v, want %v", res.Layout, LayoutTabular)
	}
	if len(res.Subjects) != 2 {
		t.Fatalf("len(Subjects) = %d, want 2", len(res.Subjects))
	}
	if res.Subjects[0].SubjectCode != "22CS301" || res.Subjects[0].SubjectName != "Operating Systems" {
		t.Errorf("Subjects[0] = %+v", res.Subjects[0])
	}
	if res.Subjects[0].FacultyName != "Dr. K Mohan" {
		t.Errorf("Subjects[0].FacultyName = %q", res.Subjects[0].FacultyName)
	}
	if res.Metadata.Department != "CSE" {
		t.Errorf("Department = %q, want CSE", res.Metadata.Department)
	}

	// the trailing student matrix aligns back onto tabular subjects
	if res.Subjects[0].ColumnIndex != 3 || res.Subjects[1].ColumnIndex != 4 {
		t.Errorf("ColumnIndex = %d, %d, want 3, 4", res.Subjects[0].ColumnIndex, res.Subjects[1].ColumnIndex)
	}
	if len(res.Students) != 1 {
		t.Fatalf("len(Students) = %d, want 1", len(res.Students))
	}
	st := res.Students[0]
	if st.HallTicket != "22CS0001" || st.Attendance["22CS301"] != 40 || st.Attendance["22CS302"] != 39 {
		t.Errorf("Students[0] = %+v", st)
	}
}

func TestParser_Parse_tabularAdjacentStudentHeader(t *testing.T) {
	// no separator row: the student header sits right under the last
	// subject row and must end subject extraction by itself
	g := Grid{
		{"Program : B.Tech", "Branch : CSE"},
		{"S.No", "Subject Code", "Short Code", "Subject Name", "Faculty Name"},
		{"1", "22CS301", "CS301", "Operating Systems", "Dr. K Mohan"},
		{"2", "22CS302", "CS302", "Database Systems", "Mrs. L Devi"},
		{"S.No", "H.T.No", "Student Name", "CS301", "CS302", "T.C"},
		{"1", "22CS0001", "A Kumar", "40", "39", "45"},
	}
	res, err := NewParser().Parse(g, "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Subjects) != 2 {
		t.Fatalf("len(Subjects) = %d, want 2", len(res.Subjects))
	}
	if res.Subjects[0].ColumnIndex != 3 || res.Subjects[1].ColumnIndex != 4 {
		t.Errorf("ColumnIndex = %d, %d, want 3, 4", res.Subjects[0].ColumnIndex, res.Subjects[1].ColumnIndex)
	}
	if len(res.Students) != 1 {
		t.Fatalf("len(Students) = %d, want 1", len(res.Students))
	}
	if got := res.Students[0].Attendance["22CS302"]; got != 39 {
		t.Errorf("Attendance[22CS302] = %d, want 39", got)
	}
}

func TestParser_Parse_tabularWithoutStudents(t *testing.T) {
	g := Grid{
		{"Program : B.Tech", "Branch : CSE"},
		{"S.No", "Subject Code", "Short Code", "Faculty Name"},
		{"1", "22CS301", "CS301", "Dr. K Mohan"},
	}
	res, err := NewParser().Parse(g, "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Students) != 0 {
		t.Errorf("len(Students) = %d, want 0", len(res.Students))
	}
	if res.Subjects[0].ColumnIndex != -1 {
		t.Errorf("ColumnIndex = %d, want -1", res.Subjects[0].ColumnIndex)
	}
}

func TestParser_Parse_errors(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want string
	}{
		{
			name: "unrecognizable sheet",
			grid: Grid{{"nothing"}, {"to", "see"}},
			want: "subject code row",
		},
		{
			name: "no metadata and no filename hints",
			grid: Grid{
				{"", "", "", "22EE201", "22EE202"},
				{"", "", "", "EE201", "EE202"},
				{"S.No", "Roll No", "Name", "EE201", "EE202"},
				{"1", "22EE0001", "B Lakshmi", "30", "31"},
			},
			want: "program/branch heading not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(tt.grid, "")
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if got := err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Parse() error = %q, want substring %q", got, tt.want)
			}
		})
	}
}
