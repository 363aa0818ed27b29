package domain

import (
	"sort"
	"time"
)

type Student struct {
	ID               string        `json:"id"`
	FirstName        string        `json:"firstName"`
	LastName         string        `json:"lastName"`
	Grade            int           `json:"grade"`
	Email            string        `json:"email"`
	Location         string        `json:"location"`
	AvatarURL        string        `json:"avatarUrl"`
	MissionStatement string        `json:"missionStatement"`
	GPA              float64       `json:"gpa"`
	SATScore         *int          `json:"satScore"`
	ACTScore         *int          `json:"actScore"`
	ClassRank        string        `json:"classRank"`
	ReadinessScore   int           `json:"readinessScore"`
	OnTrackStatus    OnTrackStatus `json:"onTrackStatus"`
}

// FullName returns "First Last".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type DurableSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type StudentProfile struct {
	Strengths            []string       `json:"strengths"`
	CareerVision         string         `json:"careerVision"`
	PersonalityType      string         `json:"personalityType"`
	ExperienceCount      int            `json:"experienceCount"`
	DurableSkillsSummary string         `json:"durableSkillsSummary"`
	TopDurableSkills     []DurableSkill `json:"topDurableSkills"`
}

type Milestone struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Source        MilestoneSource `json:"source"`
	Status        MilestoneStatus `json:"status"`
	Progress      int             `json:"progress"`
	ProgressLabel string          `json:"progressLabel,omitempty"`
	Description   string          `json:"description,omitempty"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// IsOverdue reports whether an incomplete milestone's due date is strictly
// before now. Done milestones and milestones without a due date are never late.
func (m Milestone) IsOverdue(now time.Time) bool {
	if m.Status == MilestoneDone || m.DueDate == nil {
		return false
	}
	return m.DueDate.Before(now)
}

type QualityFlag struct {
	MilestoneID string    `json:"milestoneId"`
	Reason      string    `json:"reason"`
	FlaggedAt   time.Time `json:"flaggedAt"`
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type SmartGoal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      GoalStatus `json:"status"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// CompletedSubtasks counts the subtasks marked completed.
func (g SmartGoal) CompletedSubtasks() int {
	n := 0
	for _, st := range g.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}

type Bookmark struct {
	ID             string       `json:"id"`
	Type           BookmarkType `json:"type"`
	Title          string       `json:"title"`
	Tags           []string     `json:"tags"`
	IsTopPick      bool         `json:"isTopPick"`
	MedianSalary   *int         `json:"medianSalary,omitempty"`
	EducationYears string       `json:"educationYears,omitempty"`
}

type Reflection struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	LessonTitle    string    `json:"lessonTitle"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	CurriculumUnit string    `json:"curriculumUnit,omitempty"`
}

// StudentData is the full bundle returned by the data provider for one student.
type StudentData struct {
	Student        Student        `json:"student"`
	Profile        StudentProfile `json:"profile"`
	Milestones     []Milestone    `json:"milestones"`
	QualityFlags   []QualityFlag  `json:"qualityFlags"`
	Goals          []SmartGoal    `json:"smartGoals"`
	Bookmarks      []Bookmark     `json:"bookmarks"`
	Reflections    []Reflection   `json:"reflections"`
	Meetings       []Meeting      `json:"meetings"`
	ManualOverride bool           `json:"manualOverride"`
}

// OnTrackInput assembles the inputs of the standing rule.
func (d StudentData) OnTrackInput() OnTrackInput {
	return OnTrackInput{
		Student:        d.Student,
		Milestones:     d.Milestones,
		QualityFlags:   d.QualityFlags,
		ManualOverride: d.ManualOverride,
	}
}

// ActiveGoals returns goals with status active, in provider order.
func (d StudentData) ActiveGoals() []SmartGoal {
	var out []SmartGoal
	for _, g := range d.Goals {
		if g.Status == GoalActive {
			out = append(out, g)
		}
	}
	return out
}

// TopPicks returns bookmarks flagged as top picks, in provider order.
func (d StudentData) TopPicks() []Bookmark {
	var out []Bookmark
	for _, b := range d.Bookmarks {
		if b.IsTopPick {
			out = append(out, b)
		}
	}
	return out
}

// LastCompletedMeeting returns the most recently scheduled completed meeting,
// or nil if none exist.
func (d StudentData) LastCompletedMeeting() *Meeting {
	var completed []Meeting
	for _, m := range d.Meetings {
		if m.Status == MeetingCompleted {
			completed = append(completed, m)
		}
	}
	if len(completed) == 0 {
		return nil
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].ScheduledDate.After(completed[j].ScheduledDate)
	})
	last := completed[0]
	return &last
}

// OnTrackInput is the sole input to the standing rule.
type OnTrackInput struct {
	Student        Student
	Milestones     []Milestone
	QualityFlags   []QualityFlag
	ManualOverride bool
}
