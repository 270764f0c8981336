package inmem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

// CourseRepository is a thread-safe in-memory course.Repository for tests.
type CourseRepository struct {
	mu   sync.RWMutex
	byID map[string]course.Course
}

var _ course.Repository = (*CourseRepository)(nil)

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{byID: make(map[string]course.Course)}
}

func (repo *CourseRepository) GetCourse(_ context.Context, code, department string, year int, _ ...core.DBExecutor) (course.Course, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var wildcard *course.Course
	for id := range repo.byID {
		c := repo.byID[id]
		if c.Code != code || c.Department != department {
			continue
		}
		switch {
		case year == 0 || c.Year == year:
			return c, nil
		case c.Year == 0: // stored NULL year matches any incoming year
			wildcard = &c
		}
	}
	if wildcard != nil {
		return *wildcard, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *CourseRepository) CreateCourse(_ context.Context, c course.Course, _ ...core.DBExecutor) (course.Course, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	c.ID = uuid.New().String()
	repo.byID[c.ID] = c
	return c, nil
}

func (repo *CourseRepository) UpdateCourse(_ context.Context, c course.Course, _ ...core.DBExecutor) (course.Course, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.byID[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.byID[c.ID] = c
	return c, nil
}

// All returns every stored course; test helper.
func (repo *CourseRepository) All() []course.Course {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]course.Course, 0, len(repo.byID))
	for _, c := range repo.byID {
		out = append(out, c)
	}
	return out
}
