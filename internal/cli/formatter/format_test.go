package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/ontrack"
	"github.com/alexanderramin/counsel/internal/planner"
)

func TestFormatStudentList_MarksStaleStanding(t *testing.T) {
	rows := []StudentRow{
		{
			Student: domain.Student{ID: "s1", FirstName: "Ana", LastName: "Ruiz", Grade: 10, GPA: 3.2},
			Report:  ontrack.Report{Status: domain.OnTrack, Stored: domain.OnTrack, Completion: ontrack.Completion{Completed: 1, Total: 2}},
		},
		{
			Student: domain.Student{ID: "s2", FirstName: "Ben", LastName: "Ode", Grade: 11, GPA: 1.5},
			Report:  ontrack.Report{Status: domain.OffTrack, Stored: domain.OnTrack},
		},
	}
	out := stripANSI(FormatStudentList(rows))
	assert.Contains(t, out, "Ana Ruiz")
	assert.Contains(t, out, "● ON TRACK")
	assert.Contains(t, out, "● OFF TRACK *")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "stored standing differs")
}

func TestFormatStudentList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatStudentList(nil)), "counsel seed")
}

func TestFormatOnTrackReport(t *testing.T) {
	s := domain.Student{FirstName: "Ben", LastName: "Ode", Grade: 11, GPA: 1.5}
	r := ontrack.Report{
		Status:     domain.OffTrack,
		Reasons:    []string{"GPA below 2.0"},
		Completion: ontrack.Completion{Completed: 1, Total: 4, Percentage: 25},
		Stored:     domain.OnTrack,
	}
	out := stripANSI(FormatOnTrackReport(s, r))
	assert.Contains(t, out, "ON-TRACK")
	assert.Contains(t, out, "Ben Ode")
	assert.Contains(t, out, "● OFF TRACK")
	assert.Contains(t, out, "✖ GPA below 2.0")
	assert.Contains(t, out, "(1 of 4 done)")
	assert.Contains(t, out, "stored standing is on_track")
}

func TestFormatMilestones(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	soon := now.AddDate(0, 0, 5)
	out := stripANSI(FormatMilestones([]domain.Milestone{
		{Title: "Essay", Status: domain.MilestoneNotDone, DueDate: &past},
		{Title: "FAFSA", Status: domain.MilestoneNotDone, DueDate: &soon, Progress: 33},
		{Title: "Assessment", Status: domain.MilestoneDone, Progress: 100},
	}, now))
	assert.Contains(t, out, "● overdue")
	assert.Contains(t, out, "In 5d")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "✔ done")
}

func TestFormatTopics(t *testing.T) {
	topics := []domain.TopicRecommendation{
		{ID: "overdue-1", Topic: "Overdue Items", Category: domain.CategoryDeadline, Priority: domain.PriorityHigh, Reason: "2 overdue"},
		{ID: "grade-level", Topic: "Senior Year Planning", Category: domain.CategoryGradeLevel, Priority: domain.PriorityLow},
	}

	out := stripANSI(FormatTopics(topics, "deterministic", "no_credential"))
	assert.Contains(t, out, " 1. Overdue Items  ▲ high  deadline")
	assert.Contains(t, out, "why: 2 overdue")
	assert.Contains(t, out, "grade level")
	assert.Contains(t, out, "id: grade-level")
	assert.Contains(t, out, "rule engine (fallback: no_credential)")

	assert.Contains(t, stripANSI(FormatTopics(nil, "ai", "")), "generative model")
}

func TestFormatAgenda_Readout(t *testing.T) {
	items := planner.BuildAgenda(nil, []string{"A", "B", "C"}, 30)

	out := stripANSI(FormatAgenda(items, planner.Allocation(items, 30)))
	assert.Regexp(t, `8m\s+A`, out)
	assert.Contains(t, out, "Wrap-up & Next Steps")
	assert.Contains(t, out, "Allocated 29m · 1m unallocated")

	over := planner.UpdateItem(items, items[0].ID, planner.ItemPatch{Duration: ptr(20)})
	out = stripANSI(FormatAgenda(over, planner.Allocation(over, 30)))
	assert.Contains(t, out, "over by 11m")

	assert.Contains(t, stripANSI(FormatAgenda(nil, planner.AgendaAllocation{})), "No agenda items.")
}

func TestFormatMeetings(t *testing.T) {
	m := &domain.Meeting{
		ID:            "0123456789abcdef",
		Title:         "Check-in",
		ScheduledDate: time.Date(2025, 2, 1, 10, 0, 0, 0, time.Local),
		Duration:      30,
		Status:        domain.MeetingCompleted,
		Summary: &domain.MeetingSummary{
			Overview:           "Went well.",
			RecommendedActions: []domain.RecommendedAction{{Title: "Draft essay", Status: domain.ActionPending}},
		},
	}
	out := stripANSI(FormatMeetings([]*domain.Meeting{m}))
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "Sat Feb 1, 2025 10:00")
	assert.Contains(t, out, "✔ Completed")
	assert.Contains(t, out, "1 pending")

	detail := stripANSI(FormatMeeting(m))
	assert.Contains(t, detail, "Went well.")
	assert.Contains(t, detail, "○ Draft essay")
}

func ptr[T any](v T) *T { return &v }
