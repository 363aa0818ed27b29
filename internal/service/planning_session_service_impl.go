package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/repository"
	"github.com/alexanderramin/counsel/internal/session"
)

type planningSessionService struct {
	students repository.StudentRepo
	topics   intelligence.TopicService
	meetings MeetingService
	store    session.Store
	observer UseCaseObserver
	now      func() time.Time
}

// NewPlanningSessionService drives scheduling wizards whose state lives in
// store. Topics load through the topic service the first time a session
// reaches its topic step; concurrent requests for one session share that call.
func NewPlanningSessionService(
	students repository.StudentRepo,
	topics intelligence.TopicService,
	meetings MeetingService,
	store session.Store,
	observers ...UseCaseObserver,
) PlanningSessionService {
	return &planningSessionService{
		students: students,
		topics:   topics,
		meetings: meetings,
		store:    store,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *planningSessionService) Start(ctx context.Context, studentID string, variant planner.Variant) (sess *session.Session, err error) {
	fields := map[string]any{"student_id": studentID, "variant": string(variant)}
	defer observe(ctx, s.observer, "start-planning-session", fields)(&err)

	data, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	w := planner.NewWizard(data.Student.ID, data.Student.FirstName, variant)
	sess = &session.Session{
		ID:        uuid.New().String(),
		Wizard:    *w,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	fields["session_id"] = sess.ID
	return sess, nil
}

func (s *planningSessionService) Get(ctx context.Context, id string) (*session.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *planningSessionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *planningSessionService) Apply(ctx context.Context, id string, action SessionAction) (out *SessionOutcome, err error) {
	fields := map[string]any{"session_id": id, "action": action.Type}
	defer observe(ctx, s.observer, "planning-session-action", fields)(&err)

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w := &sess.Wizard

	switch action.Type {
	case ActionSetSchedule:
		duration := action.Duration
		if duration == 0 {
			duration = w.Duration
		}
		if !planner.ValidDuration(duration) {
			return nil, fmt.Errorf("%w: duration must be one of %v", ErrInvalidInput, planner.DurationOptions)
		}
		w.SetSchedule(duration, action.Date, action.Time)

	case ActionNext:
		if err := w.Next(); err != nil {
			return nil, err
		}
		if err := s.loadTopics(ctx, sess); err != nil {
			return nil, err
		}

	case ActionBack:
		w.Back()

	case ActionToggleTopic:
		if action.TopicID == "" {
			return nil, fmt.Errorf("%w: topicId is required", ErrInvalidInput)
		}
		w.ToggleTopic(action.TopicID)

	case ActionAddCustom:
		w.AddCustomTopic(action.Topic)

	case ActionRemoveCustom:
		w.RemoveCustomTopic(action.Index)

	case ActionRemoveItem:
		w.RemoveAgendaItem(action.ItemID)

	case ActionUpdateItem:
		if action.Patch == nil {
			return nil, fmt.Errorf("%w: patch is required", ErrInvalidInput)
		}
		w.UpdateAgendaItem(action.ItemID, *action.Patch)

	case ActionAddItem:
		if strings.TrimSpace(action.Topic) == "" {
			return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
		}
		w.AddAgendaItem(action.Topic)

	case ActionSetTitle:
		w.SetTitle(action.Title)

	case ActionConfirm, ActionScheduleWithoutAgenda:
		return s.book(ctx, sess, action.Type)

	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action.Type)
	}

	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return &SessionOutcome{Session: sess}, nil
}

// loadTopics fills the recommendations once the wizard reaches a topic step.
// Going back and forward again keeps the first list and its selection.
func (s *planningSessionService) loadTopics(ctx context.Context, sess *session.Session) error {
	w := &sess.Wizard
	if w.RecommendationsLoaded || (w.Step != planner.StepTopics && w.Step != planner.StepTopicsAgenda) {
		return nil
	}

	data, err := s.students.Get(ctx, w.StudentID)
	if err != nil {
		return err
	}

	var res intelligence.TopicResult
	if s.topics == nil {
		res = intelligence.TopicResult{
			Topics: planner.RecommendTopics(*data, s.now()),
			Source: intelligence.SourceDeterministic,
		}
	} else {
		res, err = s.topics.RecommendAsync(ctx, sess.ID, *data).Wait(ctx)
		if err != nil {
			return err
		}
	}

	w.SetRecommendations(res.Topics)
	sess.TopicSource = string(res.Source)
	sess.FallbackCode = res.FallbackCode
	return nil
}

func (s *planningSessionService) book(ctx context.Context, sess *session.Session, kind string) (*SessionOutcome, error) {
	w := sess.Wizard
	var (
		req domain.MeetingRequest
		err error
	)
	if kind == ActionConfirm {
		req, err = w.Confirm()
	} else {
		req, err = w.ScheduleWithoutAgenda()
	}
	if err != nil {
		return nil, err
	}

	meeting, err := s.meetings.Schedule(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return nil, err
	}
	return &SessionOutcome{Meeting: meeting}, nil
}
