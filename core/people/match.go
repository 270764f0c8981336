package people

import (
	"context"

	"github.com/vidyalabs/vidya/core"
)

// MatchKind tags how an incoming record resolved against the store.
type MatchKind int

const (
	NoMatch MatchKind = iota
	MatchedByRoll
	MatchedByEmail
)

func (k MatchKind) String() string {
	switch k {
	case MatchedByRoll:
		return "roll"
	case MatchedByEmail:
		return "email"
	default:
		return "none"
	}
}

// Match is the outcome of the match step: the kind plus, for anything
// but NoMatch, the existing person.
type Match struct {
	Kind   MatchKind
	Person Person
}

// MatchPerson resolves an incoming record by the most specific key
// available: roll number first, then email. A missing row on one key
// falls through to the next; NoMatch is never an error.
func MatchPerson(ctx context.Context, repo Repository, rollNumber, email string, exec ...core.DBExecutor) (Match, error) {
	if rollNumber != "" {
		p, err := repo.GetPerson(ctx, GetFilter{RollNumber: rollNumber}, exec...)
		switch err {
		case nil:
			return Match{Kind: MatchedByRoll, Person: p}, nil
		case ErrNotFound:
		default:
			return Match{}, err
		}
	}
	if email != "" {
		p, err := repo.GetPerson(ctx, GetFilter{Email: email}, exec...)
		switch err {
		case nil:
			return Match{Kind: MatchedByEmail, Person: p}, nil
		case ErrNotFound:
		default:
			return Match{}, err
		}
	}
	return Match{Kind: NoMatch}, nil
}
