package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for a generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether a call could be attempted at all.
	Available(ctx context.Context) bool
}

// NewClient builds the backend selected by cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.Provider == ProviderGenAI {
		return NewGenAIClient(ctx, cfg, observer)
	}
	return NewGeminiClient(cfg, observer), nil
}

// geminiClient implements LLMClient against the generateContent REST endpoint.
type geminiClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient that posts to {Endpoint}/models/{Model}:generateContent.
func NewGeminiClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            float64 `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiRequest is the JSON body sent to :generateContent.
type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// text returns candidates[0].content.parts[0].text, or "" if any level is missing.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// sampling resolves the task defaults and per-request overrides.
func sampling(cfg LLMConfig, req GenerateRequest) generationConfig {
	taskCfg := cfg.Tasks[req.Task]
	gc := generationConfig{
		Temperature:     taskCfg.Temperature,
		TopK:            taskCfg.TopK,
		TopP:            taskCfg.TopP,
		MaxOutputTokens: taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		gc.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		gc.MaxOutputTokens = *req.MaxTokens
	}
	return gc
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if !c.cfg.HasCredential() {
		c.observe(req.Task, start, ErrNoCredential)
		return nil, ErrNoCredential
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	body := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: req.UserPrompt}}}},
		GenerationConfig: sampling(c.cfg, req),
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = ErrTimeout
		case ctx.Err() != nil:
			err = ctx.Err()
		case isConnectionError(err):
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c.observe(req.Task, start, err)
		return nil, err
	}

	text := resp.text()
	if strings.TrimSpace(text) == "" {
		c.observe(req.Task, start, ErrEmptyResponse)
		return nil, ErrEmptyResponse
	}

	latency := c.observe(req.Task, start, nil)
	model := resp.ModelVersion
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{
		Text:      text,
		Model:     model,
		LatencyMs: latency,
	}, nil
}

func (c *geminiClient) observe(task TaskType, start time.Time, err error) int64 {
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

func (c *geminiClient) doRequest(ctx context.Context, body geminiRequest) (*geminiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}

	return &resp, nil
}

func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.HasCredential()
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
