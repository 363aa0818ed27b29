// Package ontrack classifies a student's standing from GPA, milestone
// deadlines, staff quality flags, and a manual override.
package ontrack

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

// MinGPA is the lowest GPA that still counts as on-track.
const MinGPA = 2.0

// Evaluate returns off_track when any of the four triggers holds:
// a missed milestone deadline, a quality flag, the manual override, or a
// GPA strictly below MinGPA.
func Evaluate(in domain.OnTrackInput, now time.Time) domain.OnTrackStatus {
	if hasMissedDeadline(in.Milestones, now) ||
		len(in.QualityFlags) > 0 ||
		in.ManualOverride ||
		hasLowGPA(in.Student) {
		return domain.OffTrack
	}
	return domain.OnTrack
}

// Explain lists one reason per triggered condition in the fixed order
// GPA, missed deadlines, quality flag, manual override. An empty list means
// the student is on track.
func Explain(in domain.OnTrackInput, now time.Time) []string {
	var reasons []string

	if hasLowGPA(in.Student) {
		reasons = append(reasons, fmt.Sprintf("GPA is below 2.0 (current: %.2f)", in.Student.GPA))
	}

	if missed := MissedDeadlines(in.Milestones, now); len(missed) > 0 {
		titles := make([]string, len(missed))
		for i, m := range missed {
			titles[i] = m.Title
		}
		label := "Missed deadline"
		if len(missed) > 1 {
			label += "s"
		}
		reasons = append(reasons, label+": "+strings.Join(titles, ", "))
	}

	if len(in.QualityFlags) > 0 {
		reasons = append(reasons, "Low quality milestone flagged")
	}

	if in.ManualOverride {
		reasons = append(reasons, "Manual override set by staff")
	}

	return reasons
}

// MissedDeadlines returns the incomplete milestones whose due date has passed,
// in input order.
func MissedDeadlines(milestones []domain.Milestone, now time.Time) []domain.Milestone {
	var out []domain.Milestone
	for _, m := range milestones {
		if m.IsOverdue(now) {
			out = append(out, m)
		}
	}
	return out
}

func hasMissedDeadline(milestones []domain.Milestone, now time.Time) bool {
	for _, m := range milestones {
		if m.IsOverdue(now) {
			return true
		}
	}
	return false
}

// hasLowGPA treats a NaN GPA as failing the threshold.
func hasLowGPA(s domain.Student) bool {
	return !(s.GPA >= MinGPA)
}

// Completion summarizes how many milestones are done.
type Completion struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// CompletionRate counts done milestones. Percentage is rounded and is 0 when
// there are no milestones.
func CompletionRate(milestones []domain.Milestone) Completion {
	c := Completion{Total: len(milestones)}
	for _, m := range milestones {
		if m.Status == domain.MilestoneDone {
			c.Completed++
		}
	}
	if c.Total > 0 {
		c.Percentage = int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
	}
	return c
}

// Report bundles the standing, its reasons, and milestone completion for display.
type Report struct {
	StudentID  string               `json:"studentId"`
	Status     domain.OnTrackStatus `json:"status"`
	Reasons    []string             `json:"reasons"`
	Completion Completion           `json:"completion"`
	// Stored is the precomputed status the data provider shipped with the record.
	Stored domain.OnTrackStatus `json:"storedStatus,omitempty"`
}

// BuildReport evaluates the student and gathers everything a presenter needs.
func BuildReport(data domain.StudentData, now time.Time) Report {
	in := data.OnTrackInput()
	reasons := Explain(in, now)
	if reasons == nil {
		reasons = []string{}
	}
	return Report{
		StudentID:  data.Student.ID,
		Status:     Evaluate(in, now),
		Reasons:    reasons,
		Completion: CompletionRate(data.Milestones),
		Stored:     data.Student.OnTrackStatus,
	}
}

// Stale reports whether the stored status disagrees with a fresh evaluation.
func (r Report) Stale() bool {
	return r.Stored != "" && r.Stored != r.Status
}
