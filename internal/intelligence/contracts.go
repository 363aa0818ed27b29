// Package intelligence wraps the deterministic planner with generative-text
// variants. Every service here degrades to the deterministic result on any
// failure and never returns the underlying error to callers.
package intelligence

import "github.com/alexanderramin/counsel/internal/domain"

// ResultSource says which path produced a result.
type ResultSource string

const (
	SourceAI            ResultSource = "ai"
	SourceDeterministic ResultSource = "deterministic"
)

// TopicResult is the outcome of a topic recommendation call.
type TopicResult struct {
	Topics []domain.TopicRecommendation `json:"topics"`
	Source ResultSource                 `json:"source"`
	// FallbackCode is the llm error code that forced the deterministic path.
	FallbackCode string `json:"fallbackCode,omitempty"`
}

// AgendaTextResult is the outcome of a text agenda call.
type AgendaTextResult struct {
	Text         string       `json:"text"`
	Source       ResultSource `json:"source"`
	FallbackCode string       `json:"fallbackCode,omitempty"`
}

// aiTopic is the wire shape the model is asked to return. Every field is
// optional; normalizeTopics fills the gaps.
type aiTopic struct {
	ID              string       `json:"id"`
	Topic           string       `json:"topic"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	Priority        string       `json:"priority"`
	Reason          string       `json:"reason"`
	SourceReference *aiSourceRef `json:"sourceReference"`
}

type aiSourceRef struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Title string `json:"title"`
}
