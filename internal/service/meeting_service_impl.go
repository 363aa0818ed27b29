package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/repository"
)

type meetingService struct {
	students repository.StudentRepo
	meetings repository.MeetingRepo
	loc      *time.Location
	observer UseCaseObserver
}

// NewMeetingService stores meetings. Wizard date-times carry no zone and
// are read in loc; nil means time.Local.
func NewMeetingService(students repository.StudentRepo, meetings repository.MeetingRepo, loc *time.Location, observers ...UseCaseObserver) MeetingService {
	if loc == nil {
		loc = time.Local
	}
	return &meetingService{
		students: students,
		meetings: meetings,
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *meetingService) Schedule(ctx context.Context, req domain.MeetingRequest) (meeting *domain.Meeting, err error) {
	fields := map[string]any{"student_id": req.StudentID, "duration": req.Duration}
	defer observe(ctx, s.observer, "schedule-meeting", fields)(&err)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	when, err := planner.ParseScheduledDate(req.ScheduledDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.students.Get(ctx, req.StudentID); err != nil {
		return nil, err
	}

	agenda := req.Agenda
	if agenda == nil {
		agenda = []domain.AgendaItem{}
	}
	m := &domain.Meeting{
		StudentID:     req.StudentID,
		Title:         title,
		ScheduledDate: when.UTC(),
		Duration:      req.Duration,
		Status:        domain.MeetingScheduled,
		Agenda:        agenda,
	}
	if err := s.meetings.Add(ctx, m); err != nil {
		return nil, fmt.Errorf("storing meeting: %w", err)
	}
	fields["meeting_id"] = m.ID
	return m, nil
}

func (s *meetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *meetingService) ListByStudent(ctx context.Context, studentID string) ([]*domain.Meeting, error) {
	if _, err := s.students.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.meetings.ListByStudent(ctx, studentID)
}

func (s *meetingService) Complete(ctx context.Context, id string, summary domain.MeetingSummary) (err error) {
	defer observe(ctx, s.observer, "complete-meeting", map[string]any{"meeting_id": id})(&err)

	for i := range summary.RecommendedActions {
		a := &summary.RecommendedActions[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.Status == "" {
			a.Status = domain.ActionPending
		}
	}
	return s.meetings.Complete(ctx, id, summary)
}

func (s *meetingService) Cancel(ctx context.Context, id string) error {
	return s.meetings.Cancel(ctx, id)
}
