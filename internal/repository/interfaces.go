package repository

import (
	"context"

	"github.com/alexanderramin/counsel/internal/domain"
)

// StudentRepo is the data provider for the planning engines.
type StudentRepo interface {
	// Get returns the full bundle for one student, meetings included.
	Get(ctx context.Context, id string) (*domain.StudentData, error)
	// List returns every student ordered by last then first name.
	List(ctx context.Context) ([]domain.Student, error)
	// Save replaces the student and their records. Meetings are upserted by
	// id and never removed.
	Save(ctx context.Context, d *domain.StudentData) error
}

type MeetingRepo interface {
	// Add assigns the id and created-at timestamp and stores the meeting.
	Add(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	// ListByStudent orders by scheduled date, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Meeting, error)
	// Complete marks a meeting completed and attaches its summary.
	Complete(ctx context.Context, id string, summary domain.MeetingSummary) error
	Cancel(ctx context.Context, id string) error
}

var (
	_ StudentRepo = (*SQLiteStudentRepo)(nil)
	_ StudentRepo = (*MemoryStudentRepo)(nil)
	_ MeetingRepo = (*SQLiteMeetingRepo)(nil)
	_ MeetingRepo = (*MemoryMeetingRepo)(nil)
)
