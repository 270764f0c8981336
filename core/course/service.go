package course

import (
	"context"
	"fmt"
	"time"

	"github.com/vidyalabs/vidya/core"
)

type (
	// RowError records a single course that could not be upserted.
	RowError struct {
		Key    string `json:"key"`
		Reason string `json:"reason"`
	}

	// BatchResult aggregates a sequential batch upsert; Resolved maps
	// course code to the persisted course.
	BatchResult struct {
		Added    int               `json:"added"`
		Updated  int               `json:"updated"`
		Skipped  int               `json:"skipped"`
		Resolved map[string]Course `json:"-"`
		Errors   []RowError        `json:"errors,omitempty"`
	}

	// Service reconciles extracted subjects into persistent courses.
	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Outcome values mirror the people services.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeUpdated
)

// Upsert matches on (code, department, year) and overwrites mutable
// fields, creating the course when no row matches. The incoming
// faculty reference is kept only when resolvable.
func (svc *Service) Upsert(ctx context.Context, nc NewCourse, exec ...core.DBExecutor) (Course, Outcome, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, 0, err
	}

	existing, err := svc.repo.GetCourse(ctx, nc.Code, nc.Department, nc.Year, exec...)
	switch err {
	case nil:
		c := existing
		c.ShortCode = keep(c.ShortCode, nc.ShortCode)
		c.Name = keep(c.Name, nc.Name)
		c.Type = keep(c.Type, nc.Type)
		c.ElectiveGroup = keep(c.ElectiveGroup, nc.ElectiveGroup)
		c.AcademicYear = keep(c.AcademicYear, nc.AcademicYear)
		c.FacultyID = keep(c.FacultyID, nc.FacultyID)
		if nc.Year > 0 {
			c.Year = nc.Year
		}
		if nc.Semester > 0 {
			c.Semester = nc.Semester
		}
		c.UpdatedAt = time.Now().UTC()
		c, err = svc.repo.UpdateCourse(ctx, c, exec...)
		return c, OutcomeUpdated, err

	case ErrNotFound:
		now := time.Now().UTC()
		c := Course{
			Code:          nc.Code,
			ShortCode:     nc.ShortCode,
			Name:          nc.Name,
			Type:          nc.Type,
			ElectiveGroup: nc.ElectiveGroup,
			Department:    nc.Department,
			Year:          nc.Year,
			Semester:      nc.Semester,
			AcademicYear:  nc.AcademicYear,
			FacultyID:     nc.FacultyID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		c, err = svc.repo.CreateCourse(ctx, c, exec...)
		return c, OutcomeAdded, err

	default:
		return Course{}, 0, err
	}
}

// UpsertBatch processes subjects sequentially with best-effort
// semantics; failed rows are recorded and skipped.
func (svc *Service) UpsertBatch(ctx context.Context, items []NewCourse, exec ...core.DBExecutor) BatchResult {
	res := BatchResult{Resolved: make(map[string]Course, len(items))}
	for _, nc := range items {
		c, outcome, err := svc.Upsert(ctx, nc, exec...)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, RowError{Key: nc.Code, Reason: err.Error()})
			svc.logger.Warn(fmt.Sprintf("skipping course %q: %v", nc.Code, err), err)
			continue
		}
		res.Resolved[c.Code] = c
		if outcome == OutcomeAdded {
			res.Added++
		} else {
			res.Updated++
		}
	}
	return res
}

func keep(old, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return old
}
