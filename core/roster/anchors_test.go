package roster

import "testing"

func TestLocateBandedAnchors(t *testing.T) {
	a, err := LocateBandedAnchors(bandedGrid(), DefaultNameValidator())
	if err != nil {
		t.Fatalf("LocateBandedAnchors() error = %v", err)
	}

	want := Anchors{
		MetadataRow:      1,
		ElectiveRow:      2,
		SubjectTypeRow:   3,
		SubjectCodeRow:   4,
		ShortCodeRow:     5,
		SubjectNameRow:   6,
		FacultyRow:       7,
		StudentHeaderRow: 8,
	}
	if a != want {
		t.Errorf("LocateBandedAnchors() = %+v, want %+v", a, want)
	}
}

func TestLocateBandedAnchors_optionalAnchorsAbsent(t *testing.T) {
	g := Grid{
		{"Program : B.Tech", "Branch : EEE"},
		{"", "", "22EE201", "22EE202"},
		{"", "", "EE201", "EE202"},
		{"S.No", "Roll No", "Name", "EE201", "EE202"},
		{"1", "22EE0001", "B Lakshmi", "30", "31"},
	}
	a, err := LocateBandedAnchors(g, DefaultNameValidator())
	if err != nil {
		t.Fatalf("LocateBandedAnchors() error = %v", err)
	}
	if a.SubjectCodeRow != 1 || a.ShortCodeRow != 2 || a.StudentHeaderRow != 3 {
		t.Errorf("required anchors = %+v", a)
	}
	for name, row := range map[string]int{
		"SubjectTypeRow": a.SubjectTypeRow,
		"ElectiveRow":    a.ElectiveRow,
		"SubjectNameRow": a.SubjectNameRow,
		"FacultyRow":     a.FacultyRow,
	} {
		if row != -1 {
			t.Errorf("%s = %d, want -1", name, row)
		}
	}
}

func TestLocateBandedAnchors_errors(t *testing.T) {
	tests := []struct {
		name       string
		grid       Grid
		wantAnchor string
	}{
		{
			name:       "no subject code row",
			grid:       Grid{{"Program : B.Tech", "Branch : ECE"}, {"just text"}, {"more text"}},
			wantAnchor: "subject code row",
		},
		{
			name:       "no student table header",
			grid:       Grid{{"Program : B.Tech", "Branch : ECE"}, {"", "22EC301", "22EC302"}, {"", "EC301", "EC302"}},
			wantAnchor: "student table header",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LocateBandedAnchors(tt.grid, DefaultNameValidator())
			lerr, ok := err.(*LayoutError)
			if !ok {
				t.Fatalf("LocateBandedAnchors() error = %v, want *LayoutError", err)
			}
			if lerr.Anchor != tt.wantAnchor {
				t.Errorf("Anchor = %q, want %q", lerr.Anchor, tt.wantAnchor)
			}
		})
	}
}
