package people_test

import (
	"context"
	"testing"

	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/storage/database/inmem"
	testutil "github.com/vidyalabs/vidya/tests"
)

func TestMatchPerson(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewPersonRepository()

	byRoll := testutil.CreatePerson(t, repo, "K Ramesh", "k.ramesh@svit.edu.in", people.RoleStudent, "ECE", "22EC0001")
	byEmail := testutil.CreatePerson(t, repo, "S Priya", "s.priya@svit.edu.in", people.RoleStudent, "ECE", "")

	tests := []struct {
		name     string
		roll     string
		email    string
		wantKind people.MatchKind
		wantID   string
	}{
		{name: "roll match", roll: "22EC0001", email: "", wantKind: people.MatchedByRoll, wantID: byRoll.ID},
		{name: "email match", roll: "", email: "s.priya@svit.edu.in", wantKind: people.MatchedByEmail, wantID: byEmail.ID},
		{name: "roll wins over email", roll: "22EC0001", email: "s.priya@svit.edu.in", wantKind: people.MatchedByRoll, wantID: byRoll.ID},
		{name: "unknown roll falls through to email", roll: "22EC9999", email: "s.priya@svit.edu.in", wantKind: people.MatchedByEmail, wantID: byEmail.ID},
		{name: "no keys", roll: "", email: "", wantKind: people.NoMatch},
		{name: "nothing matches", roll: "22EC9999", email: "nobody@svit.edu.in", wantKind: people.NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := people.MatchPerson(ctx, repo, tt.roll, tt.email)
			if err != nil {
				t.Fatalf("MatchPerson() error = %v", err)
			}
			if m.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", m.Kind, tt.wantKind)
			}
			if tt.wantKind != people.NoMatch && m.Person.ID != tt.wantID {
				t.Errorf("Person.ID = %s, want %s", m.Person.ID, tt.wantID)
			}
		})
	}
}
