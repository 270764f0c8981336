package identity

import (
	"testing"

	"github.com/pkg/errors"
)

func TestResolver_EmailFor(t *testing.T) {
	r := NewResolver("svit.edu.in")

	tests := []struct {
		name string
		want string
	}{
		{name: "Dr. S Rekha", want: "dr.s.rekha@svit.edu.in"},
		{name: "P Srinivas Rao", want: "p.srinivas.rao@svit.edu.in"},
		{name: "  K   Ramesh  ", want: "k.ramesh@svit.edu.in"},
		{name: "A-B_C", want: "a.b.c@svit.edu.in"},
		{name: "O'Brien", want: "obrien@svit.edu.in"},
		{name: "Mrs. L. Devi.", want: "mrs.l.devi@svit.edu.in"},
		{name: "", want: ""},
		{name: "  .  ", want: ""},
		{name: "రమేష్ కుమార్", want: ""}, // nothing transliterable
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.EmailFor(tt.name); got != tt.want {
				t.Errorf("EmailFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolver_EmailFor_deterministic(t *testing.T) {
	r := NewResolver("svit.edu.in")
	first := r.EmailFor("Dr. A Sharma")
	for i := 0; i < 5; i++ {
		if got := r.EmailFor("Dr. A Sharma"); got != first {
			t.Fatalf("EmailFor() = %q, want %q", got, first)
		}
	}
}

func TestResolver_UniqueEmail(t *testing.T) {
	r := NewResolver("svit.edu.in")

	t.Run("free address is kept", func(t *testing.T) {
		got, err := r.UniqueEmail("k.ramesh@svit.edu.in", func(string) (bool, error) { return false, nil })
		if err != nil {
			t.Fatalf("UniqueEmail() error = %v", err)
		}
		if got != "k.ramesh@svit.edu.in" {
			t.Errorf("UniqueEmail() = %q", got)
		}
	})

	t.Run("suffix on collision", func(t *testing.T) {
		taken := map[string]bool{
			"k.ramesh@svit.edu.in":  true,
			"k.ramesh1@svit.edu.in": true,
		}
		got, err := r.UniqueEmail("k.ramesh@svit.edu.in", func(probe string) (bool, error) {
			return taken[probe], nil
		})
		if err != nil {
			t.Fatalf("UniqueEmail() error = %v", err)
		}
		if got != "k.ramesh2@svit.edu.in" {
			t.Errorf("UniqueEmail() = %q, want k.ramesh2@svit.edu.in", got)
		}
	})

	t.Run("candidate without an at sign errors", func(t *testing.T) {
		_, err := r.UniqueEmail("", func(string) (bool, error) { return true, nil })
		if err == nil {
			t.Fatal("UniqueEmail() accepted an empty candidate")
		}
	})

	t.Run("probe error propagates", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := r.UniqueEmail("k.ramesh@svit.edu.in", func(string) (bool, error) { return false, boom })
		if errors.Cause(err) != boom {
			t.Errorf("UniqueEmail() error = %v, want cause %v", err, boom)
		}
	})
}
