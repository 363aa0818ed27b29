package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/planner"
)

// FormatTopics renders recommendations in priority order with their reasons.
// source is "ai" or "deterministic"; fallbackCode explains a fallback.
func FormatTopics(topics []domain.TopicRecommendation, source, fallbackCode string) string {
	var b strings.Builder
	b.WriteString(Header("Recommended topics") + "\n")
	if len(topics) == 0 {
		b.WriteString(Dim("No topics to suggest.") + "\n")
	}
	for i, t := range topics {
		fmt.Fprintf(&b, "%2d. %s  %s  %s\n", i+1, Bold(t.Topic), PriorityPill(t.Priority), CategoryBadge(t.Category))
		if t.Description != "" {
			fmt.Fprintf(&b, "    %s\n", t.Description)
		}
		if t.Reason != "" {
			fmt.Fprintf(&b, "    %s\n", Dim("why: "+t.Reason))
		}
		fmt.Fprintf(&b, "    %s\n", Dim("id: "+t.ID))
	}
	b.WriteString(sourceLine(source, fallbackCode))
	return b.String()
}

// FormatAgenda renders agenda items and the minutes readout.
func FormatAgenda(items []domain.AgendaItem, alloc planner.AgendaAllocation) string {
	if len(items) == 0 {
		return Dim("No agenda items.") + "\n"
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		source := StyleBlue.Render("counselor")
		if it.Source == domain.ProvenanceAIRecommended {
			source = StylePurple.Render("recommended")
		}
		topic := it.Topic
		if it.Covered {
			topic = StyleDim.Render("✔ " + topic)
		}
		rows = append(rows, []string{FormatMinutes(it.Duration), topic, source})
	}

	out := RenderTable([]string{"TIME", "TOPIC", "SOURCE"}, rows)
	readout := fmt.Sprintf("Allocated %s", FormatMinutes(alloc.Allocated))
	switch {
	case alloc.Unallocated > 0:
		readout += StyleYellow.Render(fmt.Sprintf(" · %s unallocated", FormatMinutes(alloc.Unallocated)))
	case alloc.Unallocated < 0:
		readout += StyleRed.Render(fmt.Sprintf(" · over by %s", FormatMinutes(-alloc.Unallocated)))
	}
	return out + Dim(readout) + "\n"
}

// FormatAgendaText frames a plain-text agenda. The text itself is left
// unstyled so it can be copied.
func FormatAgendaText(text, source, fallbackCode string) string {
	return text + "\n\n" + sourceLine(source, fallbackCode)
}

// FormatMeetings lists a student's meetings, newest first as given.
func FormatMeetings(meetings []*domain.Meeting) string {
	if len(meetings) == 0 {
		return Dim("No meetings.") + "\n"
	}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		pending := ""
		if m.HasPendingActions() {
			pending = StyleYellow.Render(fmt.Sprintf("%d pending", len(m.Summary.PendingActions())))
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			MeetingTime(m.ScheduledDate),
			m.Title,
			FormatMinutes(m.Duration),
			MeetingStatusPill(m.Status),
			pending,
		})
	}
	return RenderTable([]string{"ID", "WHEN", "TITLE", "LENGTH", "STATUS", "ACTIONS"}, rows)
}

// FormatMeeting renders one meeting with its agenda and summary.
func FormatMeeting(m *domain.Meeting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(m.Title), MeetingStatusPill(m.Status))
	fmt.Fprintf(&b, "%s · %s\n", MeetingTime(m.ScheduledDate), FormatMinutes(m.Duration))
	b.WriteString(Dim("id: "+m.ID) + "\n")

	if len(m.Agenda) > 0 {
		b.WriteString("\n" + FormatAgenda(m.Agenda, planner.Allocation(m.Agenda, m.Duration)))
	}
	if s := m.Summary; s != nil {
		b.WriteString("\n" + Header("Summary") + "\n")
		if s.Overview != "" {
			b.WriteString(s.Overview + "\n")
		}
		for _, kp := range s.KeyPoints {
			b.WriteString("  • " + kp + "\n")
		}
		for _, a := range s.RecommendedActions {
			mark := StyleYellow.Render("○")
			switch a.Status {
			case domain.ActionAccepted:
				mark = StyleGreen.Render("✔")
			case domain.ActionDismissed:
				mark = StyleDim.Render("✖")
			}
			fmt.Fprintf(&b, "  %s %s\n", mark, a.Title)
		}
	}
	return b.String()
}

func sourceLine(source, fallbackCode string) string {
	if source == "ai" {
		return Dim("source: generative model") + "\n"
	}
	if fallbackCode != "" {
		return Dim(fmt.Sprintf("source: rule engine (fallback: %s)", fallbackCode)) + "\n"
	}
	return Dim("source: rule engine") + "\n"
}
