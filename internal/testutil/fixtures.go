package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
)

// StudentData options
type StudentOption func(*domain.StudentData)

func WithStudentID(id string) StudentOption {
	return func(d *domain.StudentData) {
		d.Student.ID = id
	}
}

func WithGrade(g int) StudentOption {
	return func(d *domain.StudentData) {
		d.Student.Grade = g
	}
}

func WithGPA(gpa float64) StudentOption {
	return func(d *domain.StudentData) {
		d.Student.GPA = gpa
	}
}

func WithTestScores(sat, act int) StudentOption {
	return func(d *domain.StudentData) {
		d.Student.SATScore = &sat
		d.Student.ACTScore = &act
	}
}

func WithStoredStatus(s domain.OnTrackStatus) StudentOption {
	return func(d *domain.StudentData) {
		d.Student.OnTrackStatus = s
	}
}

func WithProfile(p domain.StudentProfile) StudentOption {
	return func(d *domain.StudentData) {
		d.Profile = p
	}
}

func WithMilestones(ms ...domain.Milestone) StudentOption {
	return func(d *domain.StudentData) {
		d.Milestones = append(d.Milestones, ms...)
	}
}

func WithQualityFlag(milestoneID, reason string) StudentOption {
	return func(d *domain.StudentData) {
		d.QualityFlags = append(d.QualityFlags, domain.QualityFlag{
			MilestoneID: milestoneID,
			Reason:      reason,
			FlaggedAt:   time.Now().UTC(),
		})
	}
}

func WithManualOverride() StudentOption {
	return func(d *domain.StudentData) {
		d.ManualOverride = true
	}
}

// WithGoal adds an active goal with done of total subtasks completed.
func WithGoal(title string, done, total int) StudentOption {
	return func(d *domain.StudentData) {
		g := domain.SmartGoal{ID: uuid.New().String(), Title: title, Status: domain.GoalActive}
		for i := 0; i < total; i++ {
			g.Subtasks = append(g.Subtasks, domain.Subtask{
				ID:        uuid.New().String(),
				Title:     "subtask",
				Completed: i < done,
			})
		}
		d.Goals = append(d.Goals, g)
	}
}

func WithBookmark(kind domain.BookmarkType, title string, topPick bool) StudentOption {
	return func(d *domain.StudentData) {
		d.Bookmarks = append(d.Bookmarks, domain.Bookmark{
			ID:        uuid.New().String(),
			Type:      kind,
			Title:     title,
			IsTopPick: topPick,
		})
	}
}

func WithReflection(title, lesson string, at time.Time) StudentOption {
	return func(d *domain.StudentData) {
		d.Reflections = append(d.Reflections, domain.Reflection{
			ID:          uuid.New().String(),
			Title:       title,
			LessonTitle: lesson,
			CreatedAt:   at,
		})
	}
}

// WithCompletedMeeting adds a completed meeting whose summary lists the
// given actions as pending.
func WithCompletedMeeting(title string, at time.Time, pending ...string) StudentOption {
	return func(d *domain.StudentData) {
		m := domain.Meeting{
			ID:            uuid.New().String(),
			StudentID:     d.Student.ID,
			Title:         title,
			ScheduledDate: at,
			Duration:      30,
			Status:        domain.MeetingCompleted,
			Agenda:        []domain.AgendaItem{},
			Summary:       &domain.MeetingSummary{Overview: "Reviewed progress.", KeyPoints: []string{}},
			CreatedAt:     at.Add(-7 * 24 * time.Hour),
		}
		for _, a := range pending {
			m.Summary.RecommendedActions = append(m.Summary.RecommendedActions, domain.RecommendedAction{
				ID:     uuid.New().String(),
				Title:  a,
				Status: domain.ActionPending,
			})
		}
		d.Meetings = append(d.Meetings, m)
	}
}

// NewTestStudentData builds an on-track grade 12 student with no records.
func NewTestStudentData(firstName, lastName string, opts ...StudentOption) *domain.StudentData {
	d := &domain.StudentData{
		Student: domain.Student{
			ID:            uuid.New().String(),
			FirstName:     firstName,
			LastName:      lastName,
			Grade:         12,
			GPA:           3.5,
			OnTrackStatus: domain.OnTrack,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	for i := range d.Meetings {
		d.Meetings[i].StudentID = d.Student.ID
	}
	return d
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithDueDate(t time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DueDate = &t
	}
}

func WithProgress(p int) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Progress = p
	}
}

func Done() MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = domain.MilestoneDone
		m.Progress = 100
		now := time.Now().UTC()
		m.CompletedAt = &now
	}
}

func NewTestMilestone(title string, opts ...MilestoneOption) domain.Milestone {
	m := domain.Milestone{
		ID:     uuid.New().String(),
		Title:  title,
		Source: domain.MilestoneSystemGenerated,
		Status: domain.MilestoneNotDone,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}
