package people

import (
	"context"
	"errors"

	"github.com/vidyalabs/vidya/core"
)

var (
	// errors
	ErrNotFound    = errors.New("person not found")
	ErrEmailExists = errors.New("a person with this email already exists")
)

type (
	// GetFilter selects a person by exactly one key, most specific first.
	GetFilter struct {
		ID         string
		Email      string
		RollNumber string
	}

	Repository interface {
		EmailExists(ctx context.Context, email string, exec ...core.DBExecutor) (bool, error)
		GetPerson(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Person, error)
		CreatePerson(ctx context.Context, p Person, exec ...core.DBExecutor) (Person, error)
		UpdatePerson(ctx context.Context, p Person, exec ...core.DBExecutor) (Person, error)
	}
)
