package intelligence

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/llm"
	"github.com/alexanderramin/counsel/internal/planner"
)

// AgendaTextService drafts an editable plain-text agenda.
type AgendaTextService interface {
	// Generate returns the model's agenda verbatim (trimmed), or the
	// template agenda on any failure.
	Generate(ctx context.Context, data domain.StudentData, meetingDate *time.Time) AgendaTextResult
}

type agendaTextService struct {
	client llm.LLMClient
	logger *zap.Logger
	now    func() time.Time
}

// NewAgendaTextService creates an AgendaTextService backed by client.
func NewAgendaTextService(client llm.LLMClient, logger *zap.Logger) AgendaTextService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &agendaTextService{client: client, logger: logger, now: time.Now}
}

func (s *agendaTextService) Generate(ctx context.Context, data domain.StudentData, meetingDate *time.Time) AgendaTextResult {
	if s.client == nil {
		return s.fallback(data, meetingDate, llm.ErrNoCredential)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskAgendaText,
		UserPrompt: BuildAgendaTextPrompt(data, meetingDate),
	})
	if err != nil {
		return s.fallback(data, meetingDate, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return s.fallback(data, meetingDate, llm.ErrEmptyResponse)
	}
	return AgendaTextResult{Text: text, Source: SourceAI}
}

func (s *agendaTextService) fallback(data domain.StudentData, meetingDate *time.Time, err error) AgendaTextResult {
	logFallback(s.logger, "agenda_text", data.Student.ID, err)
	return AgendaTextResult{
		Text:         planner.FallbackAgendaText(data, meetingDate, s.now()),
		Source:       SourceDeterministic,
		FallbackCode: llm.ErrorCode(err),
	}
}
