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

// synthesizeEnrollments derives the student-course edges implied by
// "this student has an attendance entry for this subject" and upserts
// each as a no-op-on-conflict insert. Enrollments are only ever added.
func (imp *Importer) synthesizeEnrollments(
	ctx context.Context,
	res *roster.ParseResult,
	students map[string]people.Person,
	courses map[string]course.Course,
	summary *Summary,
) error {
	err := imp.inTx(ctx, func(tx core.DBTransactor) error {
		for _, st := range res.Students {
			p, ok := resolvePerson(students, st)
			if !ok {
				continue // row was skipped during reconciliation
			}
			// subject order keeps the pass deterministic
			for _, subj := range res.Subjects {
				if _, has := st.Attendance[subj.SubjectCode]; !has {
					continue
				}
				c, ok := courses[subj.SubjectCode]
				if !ok {
					continue
				}
				created, uErr := imp.enrollments.UpsertEnrollment(ctx, course.Enrollment{
					StudentID: p.ID,
					CourseID:  c.ID,
				}, tx)
				if uErr != nil {
					key := fmt.Sprintf("%s/%s", rowKeyOf(st), subj.SubjectCode)
					summary.Skipped = append(summary.Skipped, SkippedRow{Entity: "enrollment", Key: key, Reason: uErr.Error()})
					imp.logger.Warn(fmt.Sprintf("skipping enrollment %s: %v", key, uErr), uErr)
					continue
				}
				if created {
					summary.EnrollmentsCreated++
				}
			}
		}
		return nil
	})
	return errors.Wrap(err, "synthesizing enrollments")
}

func rowKeyOf(st roster.Student) string {
	if st.HallTicket != "" {
		return st.HallTicket
	}
	return core.CollapseSpaces(st.Name)
}
