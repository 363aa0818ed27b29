package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// contentGenerator is the slice of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// genaiClient implements LLMClient with the Google GenAI SDK.
type genaiClient struct {
	cfg      LLMConfig
	models   contentGenerator
	observer Observer
}

// NewGenAIClient creates an SDK-backed LLMClient. Without a credential the
// SDK is never constructed and every call returns ErrNoCredential.
func NewGenAIClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	c := &genaiClient{cfg: cfg, observer: observer}
	if !cfg.HasCredential() {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	c.models = client.Models
	return c, nil
}

func (c *genaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if c.models == nil {
		c.observe(req.Task, start, ErrNoCredential)
		return nil, ErrNoCredential
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	gc := sampling(c.cfg, req)
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(gc.Temperature)),
		TopK:            genai.Ptr(float32(gc.TopK)),
		TopP:            genai.Ptr(float32(gc.TopP)),
		MaxOutputTokens: int32(gc.MaxOutputTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), config)
	if err != nil {
		var apiErr genai.APIError
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = ErrTimeout
		case ctx.Err() != nil:
			err = ctx.Err()
		case errors.As(err, &apiErr) && apiErr.Code != 0:
			err = &StatusError{StatusCode: apiErr.Code, Body: apiErr.Message}
		default:
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.observe(req.Task, start, err)
		return nil, err
	}

	text := ""
	if resp != nil {
		text = resp.Text()
	}
	if strings.TrimSpace(text) == "" {
		c.observe(req.Task, start, ErrEmptyResponse)
		return nil, ErrEmptyResponse
	}

	latency := c.observe(req.Task, start, nil)
	model := c.cfg.Model
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func (c *genaiClient) observe(task TaskType, start time.Time, err error) int64 {
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: ErrorCode(err),
	})
	return latency
}

func (c *genaiClient) Available(context.Context) bool {
	return c.models != nil
}
