package inmem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/people"
)

// PersonRepository is a thread-safe in-memory people.Repository for tests.
type PersonRepository struct {
	mu   sync.RWMutex
	byID map[string]people.Person
}

var _ people.Repository = (*PersonRepository)(nil)

func NewPersonRepository() *PersonRepository {
	return &PersonRepository{byID: make(map[string]people.Person)}
}

func (repo *PersonRepository) EmailExists(_ context.Context, email string, _ ...core.DBExecutor) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, p := range repo.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *PersonRepository) GetPerson(_ context.Context, filter people.GetFilter, _ ...core.DBExecutor) (people.Person, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if filter.ID != "" {
		if p, ok := repo.byID[filter.ID]; ok {
			return p, nil
		}
		return people.Person{}, people.ErrNotFound
	}
	for _, p := range repo.byID {
		if filter.RollNumber != "" && p.RollNumber == filter.RollNumber {
			return p, nil
		}
	}
	for _, p := range repo.byID {
		if filter.Email != "" && p.Email == filter.Email {
			return p, nil
		}
	}
	return people.Person{}, people.ErrNotFound
}

func (repo *PersonRepository) CreatePerson(_ context.Context, p people.Person, _ ...core.DBExecutor) (people.Person, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.byID {
		if existing.Email == p.Email {
			return people.Person{}, people.ErrEmailExists
		}
	}
	p.ID = uuid.New().String()
	repo.byID[p.ID] = p
	return p, nil
}

func (repo *PersonRepository) UpdatePerson(_ context.Context, p people.Person, _ ...core.DBExecutor) (people.Person, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byID[p.ID]; !ok {
		return people.Person{}, people.ErrNotFound
	}
	repo.byID[p.ID] = p
	return p, nil
}

// All returns every stored person; test helper.
func (repo *PersonRepository) All() []people.Person {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]people.Person, 0, len(repo.byID))
	for _, p := range repo.byID {
		out = append(out, p)
	}
	return out
}
