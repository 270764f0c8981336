package ingest

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/core/roster"
)

// seedAttendance writes one AttendanceSummary per (student, course)
// attendance count, keyed on the month and year of the sheet's
// from-date. The aggregate has no other time anchor, so a missing
// from-date is fatal for this stage (and only this stage).
func (imp *Importer) seedAttendance(
	ctx context.Context,
	res *roster.ParseResult,
	students map[string]people.Person,
	courses map[string]course.Course,
	summary *Summary,
) error {
	var hasCounts bool
	for _, st := range res.Students {
		if len(st.Attendance) > 0 {
			hasCounts = true
			break
		}
	}
	if !hasCounts {
		return nil
	}
	if res.Metadata.FromDate.IsZero() {
		return ErrNoTimeAnchor
	}
	month := int(res.Metadata.FromDate.Month())
	year := res.Metadata.FromDate.Year()

	err := imp.inTx(ctx, func(tx core.DBTransactor) error {
		for _, st := range res.Students {
			p, ok := resolvePerson(students, st)
			if !ok {
				continue
			}
			for _, subj := range res.Subjects {
				attended, has := st.Attendance[subj.SubjectCode]
				if !has {
					continue
				}
				c, ok := courses[subj.SubjectCode]
				if !ok {
					continue
				}

				s := course.AttendanceSummary{
					StudentID:       p.ID,
					CourseID:        c.ID,
					Month:           month,
					Year:            year,
					AttendedClasses: attended,
					TotalClasses:    st.TotalClasses,
				}
				if st.TotalClasses != nil && *st.TotalClasses > 0 {
					pct := float64(attended) / float64(*st.TotalClasses) * 100
					s.Percentage = &pct
				}

				created, uErr := imp.attendance.UpsertSummary(ctx, s, tx)
				if uErr != nil {
					key := fmt.Sprintf("%s/%s", rowKeyOf(st), subj.SubjectCode)
					summary.Skipped = append(summary.Skipped, SkippedRow{Entity: "attendance", Key: key, Reason: uErr.Error()})
					imp.logger.Warn(fmt.Sprintf("skipping attendance %s: %v", key, uErr), uErr)
					continue
				}
				if created {
					summary.AttendanceAdded++
				} else {
					summary.AttendanceUpdated++
				}
			}
		}
		return nil
	})
	return errors.Wrap(err, "seeding attendance aggregates")
}
