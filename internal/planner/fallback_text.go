package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

const (
	maxPriorityItems = 2
	urgentWindowDays = 14
)

type textTopic struct {
	topic       string
	description string
}

var gradeTextTopics = map[int]textTopic{
	12: {"College Application Status", "Review submitted applications and financial aid progress."},
	11: {"College Planning", "Discuss college list development and testing plans."},
	10: {"Career Exploration", "Review career interests and extracurricular involvement."},
	9:  {"High School Transition", "Check in on adjustment and course planning."},
}

// FallbackAgendaText renders the plain-text agenda used when the generative
// service is unavailable. A nil meetingDate renders as "Upcoming".
func FallbackAgendaText(data domain.StudentData, meetingDate *time.Time, now time.Time) string {
	s := data.Student

	formattedDate := "Upcoming"
	if meetingDate != nil {
		formattedDate = meetingDate.Format("Monday, January 2, 2006")
	}

	lines := []string{
		fmt.Sprintf("Meeting with %s %s", s.FirstName, s.LastName),
		fmt.Sprintf("Grade %d | %s", s.Grade, formattedDate),
		"",
		"PRIORITY ITEMS",
	}

	added := 0
	for _, m := range data.Milestones {
		if added == maxPriorityItems {
			break
		}
		if m.Status != domain.MilestoneNotDone || m.DueDate == nil {
			continue
		}
		days := DaysUntil(*m.DueDate, now)
		if days <= 0 || days > urgentWindowDays {
			continue
		}
		lines = append(lines,
			"- "+m.Title,
			fmt.Sprintf("  Due in %d days. Currently %d%% complete.", days, m.Progress),
		)
		added++
	}

	for _, g := range data.ActiveGoals() {
		if added == maxPriorityItems {
			break
		}
		lines = append(lines,
			"- "+g.Title,
			fmt.Sprintf("  %d/%d subtasks completed.", g.CompletedSubtasks(), len(g.Subtasks)),
		)
		added++
	}

	if added == 0 {
		lines = append(lines,
			"- Review current progress",
			"  Check in on overall academic and career planning progress.",
		)
	}

	lines = append(lines, "", "DISCUSSION TOPICS")

	if gt, ok := gradeTextTopics[s.Grade]; ok {
		lines = append(lines, "- "+gt.topic, "  "+gt.description)
	}

	if picks := data.TopPicks(); len(picks) > 0 {
		if len(picks) > 2 {
			picks = picks[:2]
		}
		titles := make([]string, len(picks))
		for i, b := range picks {
			titles[i] = b.Title
		}
		lines = append(lines,
			"- Career Exploration",
			"  Discuss interest in "+strings.Join(titles, ", ")+".",
		)
	}

	if last := data.LastCompletedMeeting(); last != nil && last.HasPendingActions() {
		lines = append(lines,
			"- Follow Up from Previous Meeting",
			"  Review pending action items from "+last.ScheduledDate.Format("Jan 2")+".",
		)
	}

	lines = append(lines, "", "NOTES", "")
	return strings.Join(lines, "\n")
}
