package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/counsel/internal/domain"
)

func TestFallbackAgendaText_Jessica(t *testing.T) {
	meeting := time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC)

	want := strings.Join([]string{
		"Meeting with Jessica Santiago",
		"Grade 12 | Tuesday, January 14, 2025",
		"",
		"PRIORITY ITEMS",
		"- Submit FAFSA Application",
		"  Due in 6 days. Currently 33% complete.",
		"- Complete all college applications by January 15th",
		"  2/5 subtasks completed.",
		"",
		"DISCUSSION TOPICS",
		"- College Application Status",
		"  Review submitted applications and financial aid progress.",
		"- Career Exploration",
		"  Discuss interest in Registered Nurse, Nurse Practitioner.",
		"- Follow Up from Previous Meeting",
		"  Review pending action items from Dec 28.",
		"",
		"NOTES",
		"",
	}, "\n")

	assert.Equal(t, want, FallbackAgendaText(jessica(), &meeting, now))
}

func TestFallbackAgendaText_UpcomingAndEmptyStudent(t *testing.T) {
	data := domain.StudentData{Student: domain.Student{FirstName: "Alex", LastName: "New", Grade: 9}}

	want := strings.Join([]string{
		"Meeting with Alex New",
		"Grade 9 | Upcoming",
		"",
		"PRIORITY ITEMS",
		"- Review current progress",
		"  Check in on overall academic and career planning progress.",
		"",
		"DISCUSSION TOPICS",
		"- High School Transition",
		"  Check in on adjustment and course planning.",
		"",
		"NOTES",
		"",
	}, "\n")

	assert.Equal(t, want, FallbackAgendaText(data, nil, now))
}

func TestFallbackAgendaText_UrgentWindow(t *testing.T) {
	in3 := now.AddDate(0, 0, 3)
	in14 := now.AddDate(0, 0, 14)
	in15 := now.AddDate(0, 0, 15)
	data := domain.StudentData{
		Student: domain.Student{FirstName: "Casey", LastName: "Behind", Grade: 11},
		Milestones: []domain.Milestone{
			{Title: "Overdue", Status: domain.MilestoneNotDone, DueDate: at(2024, 12, 1)},
			{Title: "Too far", Status: domain.MilestoneNotDone, DueDate: &in15},
			{Title: "Done", Status: domain.MilestoneDone, DueDate: &in3},
			{Title: "Edge", Status: domain.MilestoneNotDone, Progress: 10, DueDate: &in14},
			{Title: "Soon", Status: domain.MilestoneNotDone, Progress: 80, DueDate: &in3},
		},
		Goals: []domain.SmartGoal{{Title: "Never shown", Status: domain.GoalActive}},
	}

	text := FallbackAgendaText(data, nil, now)
	assert.Contains(t, text, "- Edge\n  Due in 14 days. Currently 10% complete.")
	assert.Contains(t, text, "- Soon\n  Due in 3 days. Currently 80% complete.")
	assert.NotContains(t, text, "Overdue")
	assert.NotContains(t, text, "Too far")
	assert.NotContains(t, text, "- Done")
	assert.NotContains(t, text, "Never shown")
	assert.NotContains(t, text, "Review current progress")
	assert.Contains(t, text, "- College Planning")
}

func TestFallbackAgendaText_NoGradeTopicOutsideBands(t *testing.T) {
	text := FallbackAgendaText(domain.StudentData{Student: domain.Student{Grade: 7}}, nil, now)
	assert.Contains(t, text, "DISCUSSION TOPICS\n\nNOTES\n")
}
