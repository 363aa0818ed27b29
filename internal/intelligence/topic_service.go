package intelligence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/llm"
	"github.com/alexanderramin/counsel/internal/planner"
)

// TopicService recommends meeting topics with a generative model and falls
// back to planner.RecommendTopics whenever the model cannot deliver.
type TopicService interface {
	// Recommend always succeeds. It makes at most one model call.
	Recommend(ctx context.Context, data domain.StudentData) TopicResult

	// RecommendAsync runs Recommend in the background. Calls that share a
	// sessionKey while one is in flight share its result.
	RecommendAsync(ctx context.Context, sessionKey string, data domain.StudentData) *Future[TopicResult]
}

type topicService struct {
	client llm.LLMClient
	logger *zap.Logger
	now    func() time.Time
	group  singleflight.Group
}

// NewTopicService creates a TopicService backed by client. A nil client
// always takes the deterministic path.
func NewTopicService(client llm.LLMClient, logger *zap.Logger) TopicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &topicService{client: client, logger: logger, now: time.Now}
}

func (s *topicService) Recommend(ctx context.Context, data domain.StudentData) TopicResult {
	topics, err := s.generate(ctx, data)
	if err != nil {
		return s.fallback(data, err)
	}
	return TopicResult{Topics: topics, Source: SourceAI}
}

func (s *topicService) generate(ctx context.Context, data domain.StudentData) ([]domain.TopicRecommendation, error) {
	if s.client == nil {
		return nil, llm.ErrNoCredential
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskTopics,
		UserPrompt: BuildTopicPrompt(data),
	})
	if err != nil {
		return nil, err
	}

	raw, err := llm.ExtractJSONArray[aiTopic](resp.Text)
	if err != nil {
		return nil, err
	}

	topics := normalizeTopics(raw, s.now())
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: model returned no topics", llm.ErrEmptyResponse)
	}
	return topics, nil
}

func (s *topicService) fallback(data domain.StudentData, err error) TopicResult {
	code := llm.ErrorCode(err)
	logFallback(s.logger, "topics", data.Student.ID, err)
	return TopicResult{
		Topics:       planner.RecommendTopics(data, s.now()),
		Source:       SourceDeterministic,
		FallbackCode: code,
	}
}

func (s *topicService) RecommendAsync(ctx context.Context, sessionKey string, data domain.StudentData) *Future[TopicResult] {
	if sessionKey == "" {
		sessionKey = data.Student.ID
	}

	ctx, cancel := context.WithCancel(ctx)
	f := newFuture[TopicResult](cancel)

	ch := s.group.DoChan(sessionKey, func() (any, error) {
		return s.Recommend(ctx, data), nil
	})

	go func() {
		defer cancel()
		select {
		case res := <-ch:
			f.resolve(res.Val.(TopicResult))
		case <-ctx.Done():
			f.resolve(s.fallback(data, ctx.Err()))
		}
	}()

	return f
}

// logFallback records why a generative call was replaced. A missing
// credential is a configuration choice, so it only logs at debug.
func logFallback(logger *zap.Logger, task, studentID string, err error) {
	fields := []zap.Field{
		zap.String("task", task),
		zap.String("student_id", studentID),
		zap.String("code", llm.ErrorCode(err)),
		zap.Error(err),
	}
	if errors.Is(err, llm.ErrNoCredential) {
		logger.Debug("generative fallback", fields...)
		return
	}
	logger.Warn("generative fallback", fields...)
}
