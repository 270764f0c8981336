package inmem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
)

type summaryKey struct {
	studentID string
	courseID  string
	month     int
	year      int
}

// AttendanceRepository is an in-memory course.AttendanceRepository for tests.
type AttendanceRepository struct {
	mu   sync.Mutex
	rows map[summaryKey]course.AttendanceSummary
}

var _ course.AttendanceRepository = (*AttendanceRepository)(nil)

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{rows: make(map[summaryKey]course.AttendanceSummary)}
}

func (repo *AttendanceRepository) UpsertSummary(_ context.Context, s course.AttendanceSummary, _ ...core.DBExecutor) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := summaryKey{studentID: s.StudentID, courseID: s.CourseID, month: s.Month, year: s.Year}
	if existing, ok := repo.rows[key]; ok {
		s.ID = existing.ID
		repo.rows[key] = s
		return false, nil
	}
	s.ID = uuid.New().String()
	repo.rows[key] = s
	return true, nil
}

// All returns every stored summary; test helper.
func (repo *AttendanceRepository) All() []course.AttendanceSummary {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	out := make([]course.AttendanceSummary, 0, len(repo.rows))
	for _, s := range repo.rows {
		out = append(out, s)
	}
	return out
}
