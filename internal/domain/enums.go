package domain

type OnTrackStatus string

const (
	OnTrack  OnTrackStatus = "on_track"
	OffTrack OnTrackStatus = "off_track"
)

type MilestoneSource string

const (
	MilestoneSystemGenerated MilestoneSource = "system_generated"
	MilestoneCustom          MilestoneSource = "custom"
)

type MilestoneStatus string

const (
	MilestoneDone    MilestoneStatus = "done"
	MilestoneNotDone MilestoneStatus = "not_done"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalArchived  GoalStatus = "archived"
)

type BookmarkType string

const (
	BookmarkCareer  BookmarkType = "career"
	BookmarkSchool  BookmarkType = "school"
	BookmarkProgram BookmarkType = "program"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

type ActionStatus string

const (
	ActionPending   ActionStatus = "pending"
	ActionAccepted  ActionStatus = "accepted"
	ActionDismissed ActionStatus = "dismissed"
)

type TopicCategory string

const (
	CategoryDeadline   TopicCategory = "deadline"
	CategoryMilestone  TopicCategory = "milestone"
	CategoryGoal       TopicCategory = "goal"
	CategoryReflection TopicCategory = "reflection"
	CategoryBookmark   TopicCategory = "bookmark"
	CategoryGradeLevel TopicCategory = "grade_level"
	CategoryFollowUp   TopicCategory = "follow_up"
)

// ValidTopicCategories lists every recognized category in display order.
var ValidTopicCategories = []TopicCategory{
	CategoryDeadline, CategoryMilestone, CategoryGoal, CategoryReflection,
	CategoryBookmark, CategoryGradeLevel, CategoryFollowUp,
}

// ParseTopicCategory maps free text onto a category. Unknown values become
// grade_level rather than an error.
func ParseTopicCategory(s string) TopicCategory {
	for _, c := range ValidTopicCategories {
		if string(c) == s {
			return c
		}
	}
	return CategoryGradeLevel
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps free text onto a priority. Unknown values become medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Rank orders priorities for sorting: high sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type SourceType string

const (
	SourceMilestone  SourceType = "milestone"
	SourceTask       SourceType = "task"
	SourceReflection SourceType = "reflection"
	SourceBookmark   SourceType = "bookmark"
	SourceGradeLevel SourceType = "grade_level"
	SourceGoal       SourceType = "goal"
	SourceMeeting    SourceType = "meeting"
)

type Provenance string

const (
	ProvenanceAIRecommended  Provenance = "ai_recommended"
	ProvenanceCounselorAdded Provenance = "counselor_added"
)
