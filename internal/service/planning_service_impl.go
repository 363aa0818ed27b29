package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/repository"
)

type planningService struct {
	students   repository.StudentRepo
	topics     intelligence.TopicService
	agendaText intelligence.AgendaTextService
	observer   UseCaseObserver
	now        func() time.Time
}

// NewPlanningService wires the rule engines and their generative variants.
// Nil intelligence services leave only the rule engines.
func NewPlanningService(
	students repository.StudentRepo,
	topics intelligence.TopicService,
	agendaText intelligence.AgendaTextService,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		students:   students,
		topics:     topics,
		agendaText: agendaText,
		observer:   useCaseObserverOrNoop(observers),
		now:        time.Now,
	}
}

func (s *planningService) RecommendTopics(ctx context.Context, studentID string, useAI bool) (result *intelligence.TopicResult, err error) {
	fields := map[string]any{"student_id": studentID, "ai": useAI}
	defer observe(ctx, s.observer, "recommend-topics", fields)(&err)

	data, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var res intelligence.TopicResult
	if useAI && s.topics != nil {
		res = s.topics.Recommend(ctx, *data)
	} else {
		res = intelligence.TopicResult{
			Topics: planner.RecommendTopics(*data, s.now()),
			Source: intelligence.SourceDeterministic,
		}
	}
	if res.Topics == nil {
		res.Topics = []domain.TopicRecommendation{}
	}
	fields["source"] = string(res.Source)
	fields["topics"] = len(res.Topics)
	return &res, nil
}

func (s *planningService) BuildAgenda(ctx context.Context, studentID string, req AgendaRequest) (result *AgendaResult, err error) {
	fields := map[string]any{"student_id": studentID, "duration": req.Duration}
	defer observe(ctx, s.observer, "build-agenda", fields)(&err)

	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	data, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	selected := append([]domain.TopicRecommendation{}, req.Recommendations...)
	if len(req.RecommendationIDs) > 0 {
		byID := make(map[string]domain.TopicRecommendation)
		for _, r := range planner.RecommendTopics(*data, s.now()) {
			byID[r.ID] = r
		}
		for _, id := range req.RecommendationIDs {
			r, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: unknown recommendation %q", ErrInvalidInput, id)
			}
			selected = append(selected, r)
		}
	}

	items := planner.BuildAgenda(selected, req.CustomTopics, req.Duration)
	fields["items"] = len(items)
	return &AgendaResult{Items: items, Allocation: planner.Allocation(items, req.Duration)}, nil
}

func (s *planningService) AgendaText(ctx context.Context, studentID string, meetingDate *time.Time, useAI bool) (result *intelligence.AgendaTextResult, err error) {
	fields := map[string]any{"student_id": studentID, "ai": useAI}
	defer observe(ctx, s.observer, "agenda-text", fields)(&err)

	data, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var res intelligence.AgendaTextResult
	if useAI && s.agendaText != nil {
		res = s.agendaText.Generate(ctx, *data, meetingDate)
	} else {
		res = intelligence.AgendaTextResult{
			Text:   planner.FallbackAgendaText(*data, meetingDate, s.now()),
			Source: intelligence.SourceDeterministic,
		}
	}
	fields["source"] = string(res.Source)
	return &res, nil
}
