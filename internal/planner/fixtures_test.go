package planner

import (
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
	return &t
}

func subtasks(done, total int) []domain.Subtask {
	out := make([]domain.Subtask, total)
	for i := range out {
		out[i] = domain.Subtask{ID: string(rune('a' + i)), Completed: i < done}
	}
	return out
}

func jessica() domain.StudentData {
	sat, act := 1380, 29
	return domain.StudentData{
		Student: domain.Student{
			ID: "jessica-santiago", FirstName: "Jessica", LastName: "Santiago", Grade: 12,
			GPA: 3.87, SATScore: &sat, ACTScore: &act, OnTrackStatus: domain.OnTrack,
		},
		Milestones: []domain.Milestone{
			{ID: "milestone-1", Title: "Complete Career Assessment", Status: domain.MilestoneDone, Progress: 100},
			{ID: "milestone-2", Title: "Build Initial College List", Status: domain.MilestoneDone, Progress: 100},
			{ID: "milestone-5", Title: "Submit FAFSA Application", Status: domain.MilestoneNotDone, Progress: 33, ProgressLabel: "1/3", DueDate: at(2025, 1, 15)},
			{ID: "milestone-6", Title: "Shadow a Healthcare Professional", Source: domain.MilestoneCustom, Status: domain.MilestoneNotDone},
		},
		Goals: []domain.SmartGoal{
			{ID: "goal-1", Title: "Complete all college applications by January 15th", Status: domain.GoalActive, Subtasks: subtasks(2, 5)},
			{ID: "goal-2", Title: "Improve SAT score by 50 points", Status: domain.GoalActive, Subtasks: subtasks(2, 4)},
			{ID: "goal-3", Title: "Complete 50 volunteer hours this semester", Status: domain.GoalCompleted, Subtasks: subtasks(3, 3)},
		},
		Bookmarks: []domain.Bookmark{
			{ID: "bm-1", Type: domain.BookmarkCareer, Title: "Registered Nurse", IsTopPick: true},
			{ID: "bm-2", Type: domain.BookmarkCareer, Title: "Nurse Practitioner", IsTopPick: true},
			{ID: "bm-3", Type: domain.BookmarkCareer, Title: "Physician Assistant"},
			{ID: "bm-4", Type: domain.BookmarkSchool, Title: "University of Texas at Austin", IsTopPick: true},
		},
		Reflections: []domain.Reflection{
			{ID: "ref-2", Title: "Career Exploration Insights", LessonTitle: "Exploring Nursing Pathways", CreatedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "ref-1", Title: "Understanding Patient Care", LessonTitle: "Healthcare Ethics Unit", CreatedAt: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		},
		Meetings: []domain.Meeting{
			{
				ID: "meeting-1", Title: "College Planning Check-in", Status: domain.MeetingCompleted,
				ScheduledDate: time.Date(2024, 12, 28, 15, 0, 0, 0, time.UTC),
				Summary: &domain.MeetingSummary{RecommendedActions: []domain.RecommendedAction{
					{ID: "act-1", Title: "Connect with the pre-nursing advisor at UT Austin", Status: domain.ActionPending},
				}},
			},
		},
	}
}

func recs(priorities ...domain.Priority) []domain.TopicRecommendation {
	out := make([]domain.TopicRecommendation, len(priorities))
	for i, p := range priorities {
		out[i] = domain.TopicRecommendation{
			ID:       "rec-" + string(rune('a'+i)),
			Topic:    "Topic " + string(rune('A'+i)),
			Category: domain.CategoryMilestone,
			Priority: p,
			Reason:   "because",
			SourceReference: &domain.SourceReference{
				Type: domain.SourceMilestone, ID: "m-" + string(rune('a'+i)), Title: "Milestone",
			},
		}
	}
	return out
}
