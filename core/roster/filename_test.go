package roster

import "testing"

func TestParseFilenameHints(t *testing.T) {
	tests := []struct {
		name string
		want FilenameHints
	}{
		{
			name: "ECE 4th Year Sem-II 2023-24.xlsx",
			want: FilenameHints{Year: 4, Semester: 2, AcademicYear: "2023-24"},
		},
		{
			name: "/uploads/CSE_III_Year_Sem-1_2024-2025.csv",
			want: FilenameHints{Year: 3, Semester: 1, AcademicYear: "2024-25"},
		},
		{
			name: "attendance.xlsx",
			want: FilenameHints{},
		},
		{
			name: "",
			want: FilenameHints{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFilenameHints(tt.name); got != tt.want {
				t.Errorf("ParseFilenameHints(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFilenameHints_Apply(t *testing.T) {
	md := Metadata{Year: 2, Semester: 1, AcademicYear: "2022-23"}

	FilenameHints{}.Apply(&md)
	if md.Year != 2 || md.Semester != 1 || md.AcademicYear != "2022-23" {
		t.Errorf("zero hints changed metadata: %+v", md)
	}

	FilenameHints{Year: 3, AcademicYear: "2023-24"}.Apply(&md)
	if md.Year != 3 || md.Semester != 1 || md.AcademicYear != "2023-24" {
		t.Errorf("hints not applied: %+v", md)
	}
}
