package inmem

import (
	"context"
	"sync"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

type enrollmentKey struct {
	studentID string
	courseID  string
}

// EnrollmentRepository is an in-memory course.EnrollmentRepository for tests.
type EnrollmentRepository struct {
	mu    sync.Mutex
	pairs map[enrollmentKey]struct{}
}

var _ course.EnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{pairs: make(map[enrollmentKey]struct{})}
}

func (repo *EnrollmentRepository) UpsertEnrollment(_ context.Context, e course.Enrollment, _ ...core.DBExecutor) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	key := enrollmentKey{studentID: e.StudentID, courseID: e.CourseID}
	if _, ok := repo.pairs[key]; ok {
		return false, nil
	}
	repo.pairs[key] = struct{}{}
	return true, nil
}

// Count returns the number of stored pairs; test helper.
func (repo *EnrollmentRepository) Count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.pairs)
}
