package roster

import "testing"

func TestDefaultNameValidator(t *testing.T) {
	nv := DefaultNameValidator()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "Dr. A Sharma", want: true},
		{in: "P Srinivas Rao", want: true},
		{in: "Mrs. L Devi", want: true},
		{in: "Prof. Reddy", want: true},
		{in: "Dr.Rekha", want: true},

		{in: "", want: false},
		{in: "12345", want: false},
		{in: "22EC301", want: false},
		{in: "THEORY", want: false},
		{in: "ELECTIVE", want: false},
		{in: "T.C", want: false},
		{in: "%", want: false},
		{in: "TOTAL CLASSES", want: false},
		{in: "ATTENDANCE", want: false},
		{in: "HOD", want: false},
		{in: "SEM", want: false},
		{in: "Faculty", want: false}, // single word, no title
		{in: "R@ju", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := nv.IsPersonName(tt.in); got != tt.want {
				t.Errorf("IsPersonName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
