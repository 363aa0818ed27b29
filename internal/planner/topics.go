package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

const defaultDeadlineWindowDays = 30

// RecommendTopics runs the fixed battery of checks against a student's data.
// Each check emits at most one recommendation with a priority fixed by the
// check type. Results are ordered high, medium, low and stable within a tier.
func RecommendTopics(data domain.StudentData, now time.Time) []domain.TopicRecommendation {
	band, hasBand := BandFor(data.Student.Grade)
	used := make(map[string]bool)

	var recs []domain.TopicRecommendation
	add := func(r *domain.TopicRecommendation) {
		if r == nil {
			return
		}
		if r.SourceReference != nil && r.SourceReference.Type == domain.SourceMilestone {
			used[r.SourceReference.ID] = true
		}
		recs = append(recs, *r)
	}

	add(overdueCheck(data.Milestones, now))
	for _, m := range data.Milestones {
		if m.IsOverdue(now) {
			used[m.ID] = true
		}
	}
	add(deadlineCheck(data.Milestones, band, hasBand, now))
	add(qualityFlagCheck(data))
	add(followUpCheck(data))
	if hasBand {
		add(gradeLevelCheck(band))
	}
	add(milestoneProgressCheck(data.Milestones, used))
	add(goalCheck(data.ActiveGoals()))
	add(reflectionCheck(data.Reflections))
	add(bookmarkCheck(data.TopPicks()))

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

// DaysUntil returns the whole days from now to t, rounded up.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

func overdueCheck(milestones []domain.Milestone, now time.Time) *domain.TopicRecommendation {
	var overdue []domain.Milestone
	for _, m := range milestones {
		if m.IsOverdue(now) {
			overdue = append(overdue, m)
		}
	}
	if len(overdue) == 0 {
		return nil
	}

	first := overdue[0]
	rec := &domain.TopicRecommendation{
		ID:          "rec-overdue-" + first.ID,
		Category:    domain.CategoryDeadline,
		Priority:    domain.PriorityHigh,
		Description: "Agree on a recovery plan and new completion dates.",
		SourceReference: &domain.SourceReference{
			Type: domain.SourceMilestone, ID: first.ID, Title: first.Title,
		},
	}
	if len(overdue) == 1 {
		rec.Topic = "Overdue: " + first.Title
		rec.Reason = fmt.Sprintf("Was due %s and is %d%% complete.", first.DueDate.Format("Jan 2"), first.Progress)
	} else {
		titles := make([]string, len(overdue))
		for i, m := range overdue {
			titles[i] = m.Title
		}
		rec.Topic = fmt.Sprintf("%d overdue milestones", len(overdue))
		rec.Reason = "Missed deadlines: " + strings.Join(titles, ", ") + "."
	}
	return rec
}

func deadlineCheck(milestones []domain.Milestone, band GradeBand, hasBand bool, now time.Time) *domain.TopicRecommendation {
	window := defaultDeadlineWindowDays
	label := "Upcoming deadline"
	if hasBand {
		window = band.DeadlineWindowDays
		label = band.DeadlineTopicLabel
	}

	var nearest *domain.Milestone
	for i := range milestones {
		m := milestones[i]
		if m.Status != domain.MilestoneNotDone || m.DueDate == nil || m.DueDate.Before(now) {
			continue
		}
		if DaysUntil(*m.DueDate, now) > window {
			continue
		}
		if nearest == nil || m.DueDate.Before(*nearest.DueDate) {
			nearest = &milestones[i]
		}
	}
	if nearest == nil {
		return nil
	}

	return &domain.TopicRecommendation{
		ID:          "rec-deadline-" + nearest.ID,
		Topic:       label + ": " + nearest.Title,
		Description: "Confirm the remaining steps and who owns each before the due date.",
		Category:    domain.CategoryDeadline,
		Priority:    domain.PriorityHigh,
		Reason:      fmt.Sprintf("Due in %d days and %d%% complete.", DaysUntil(*nearest.DueDate, now), nearest.Progress),
		SourceReference: &domain.SourceReference{
			Type: domain.SourceMilestone, ID: nearest.ID, Title: nearest.Title,
		},
	}
}

func qualityFlagCheck(data domain.StudentData) *domain.TopicRecommendation {
	if len(data.QualityFlags) == 0 {
		return nil
	}
	flag := data.QualityFlags[0]
	title := flag.MilestoneID
	for _, m := range data.Milestones {
		if m.ID == flag.MilestoneID {
			title = m.Title
			break
		}
	}

	reason := "Flagged by staff for review."
	if flag.Reason != "" {
		reason = "Flagged by staff: " + flag.Reason
	}
	return &domain.TopicRecommendation{
		ID:          "rec-flag-" + flag.MilestoneID,
		Topic:       "Review flagged work: " + title,
		Description: "Walk through the reviewer's concern and what a stronger submission looks like.",
		Category:    domain.CategoryMilestone,
		Priority:    domain.PriorityHigh,
		Reason:      reason,
		SourceReference: &domain.SourceReference{
			Type: domain.SourceMilestone, ID: flag.MilestoneID, Title: title,
		},
	}
}

func followUpCheck(data domain.StudentData) *domain.TopicRecommendation {
	last := data.LastCompletedMeeting()
	if last == nil || !last.HasPendingActions() {
		return nil
	}
	pending := last.Summary.PendingActions()
	titles := make([]string, len(pending))
	for i, a := range pending {
		titles[i] = a.Title
	}
	return &domain.TopicRecommendation{
		ID:          "rec-followup-" + last.ID,
		Topic:       "Follow up: " + last.Title,
		Description: "Check on action items agreed at the last meeting.",
		Category:    domain.CategoryFollowUp,
		Priority:    domain.PriorityMedium,
		Reason:      "Pending actions: " + strings.Join(titles, ", "),
		SourceReference: &domain.SourceReference{
			Type: domain.SourceMeeting, ID: last.ID, Title: last.Title,
		},
	}
}

func gradeLevelCheck(band GradeBand) *domain.TopicRecommendation {
	return &domain.TopicRecommendation{
		ID:          fmt.Sprintf("rec-grade-%d", band.Grade),
		Topic:       band.StandardTopic,
		Description: band.StandardDescription,
		Category:    domain.CategoryGradeLevel,
		Priority:    domain.PriorityMedium,
		Reason:      fmt.Sprintf("Standard %s topic for grade %d (%s).", band.Name, band.Grade, band.Exposure),
		SourceReference: &domain.SourceReference{
			Type: domain.SourceGradeLevel, ID: fmt.Sprintf("grade-%d", band.Grade), Title: band.Name,
		},
	}
}

// milestoneProgressCheck picks the least-progressed open milestone that no
// earlier check already covers.
func milestoneProgressCheck(milestones []domain.Milestone, used map[string]bool) *domain.TopicRecommendation {
	var pick *domain.Milestone
	for i := range milestones {
		m := milestones[i]
		if m.Status != domain.MilestoneNotDone || used[m.ID] {
			continue
		}
		if pick == nil || m.Progress < pick.Progress {
			pick = &milestones[i]
		}
	}
	if pick == nil {
		return nil
	}

	reason := fmt.Sprintf("%d%% complete", pick.Progress)
	if pick.ProgressLabel != "" {
		reason += " (" + pick.ProgressLabel + ")"
	}
	return &domain.TopicRecommendation{
		ID:          "rec-milestone-" + pick.ID,
		Topic:       "Milestone progress: " + pick.Title,
		Description: pick.Description,
		Category:    domain.CategoryMilestone,
		Priority:    domain.PriorityMedium,
		Reason:      reason + ".",
		SourceReference: &domain.SourceReference{
			Type: domain.SourceMilestone, ID: pick.ID, Title: pick.Title,
		},
	}
}

// goalCheck picks the active goal with the most unfinished subtasks.
func goalCheck(goals []domain.SmartGoal) *domain.TopicRecommendation {
	var pick *domain.SmartGoal
	bestRemaining := 0
	for i := range goals {
		remaining := len(goals[i].Subtasks) - goals[i].CompletedSubtasks()
		if remaining > bestRemaining {
			pick = &goals[i]
			bestRemaining = remaining
		}
	}
	if pick == nil {
		return nil
	}
	return &domain.TopicRecommendation{
		ID:          "rec-goal-" + pick.ID,
		Topic:       "Goal check-in: " + pick.Title,
		Description: pick.Description,
		Category:    domain.CategoryGoal,
		Priority:    domain.PriorityMedium,
		Reason:      fmt.Sprintf("%d/%d subtasks complete.", pick.CompletedSubtasks(), len(pick.Subtasks)),
		SourceReference: &domain.SourceReference{
			Type: domain.SourceGoal, ID: pick.ID, Title: pick.Title,
		},
	}
}

func reflectionCheck(reflections []domain.Reflection) *domain.TopicRecommendation {
	if len(reflections) == 0 {
		return nil
	}
	latest := reflections[0]
	for _, r := range reflections[1:] {
		if r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return &domain.TopicRecommendation{
		ID:          "rec-reflection-" + latest.ID,
		Topic:       "Reflection: " + latest.Title,
		Description: "Ask what the student took away and how it connects to their plans.",
		Category:    domain.CategoryReflection,
		Priority:    domain.PriorityLow,
		Reason:      fmt.Sprintf("Most recent reflection, from lesson %q.", latest.LessonTitle),
		SourceReference: &domain.SourceReference{
			Type: domain.SourceReflection, ID: latest.ID, Title: latest.Title,
		},
	}
}

func bookmarkCheck(topPicks []domain.Bookmark) *domain.TopicRecommendation {
	if len(topPicks) == 0 {
		return nil
	}
	if len(topPicks) > 2 {
		topPicks = topPicks[:2]
	}
	titles := make([]string, len(topPicks))
	for i, b := range topPicks {
		titles[i] = b.Title
	}
	first := topPicks[0]
	return &domain.TopicRecommendation{
		ID:          "rec-bookmark-" + first.ID,
		Topic:       "Explore: " + strings.Join(titles, ", "),
		Description: "Discuss what draws the student to these picks and next steps to learn more.",
		Category:    domain.CategoryBookmark,
		Priority:    domain.PriorityLow,
		Reason:      "Marked as top picks.",
		SourceReference: &domain.SourceReference{
			Type: domain.SourceBookmark, ID: first.ID, Title: first.Title,
		},
	}
}
