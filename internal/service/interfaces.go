package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/importer"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/ontrack"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/session"
)

// ErrInvalidInput marks a request the caller must fix before retrying.
var ErrInvalidInput = errors.New("invalid input")

type StudentService interface {
	List(ctx context.Context) ([]domain.Student, error)
	Get(ctx context.Context, id string) (*domain.StudentData, error)
	// OnTrack evaluates the student's standing as of now.
	OnTrack(ctx context.Context, id string) (*ontrack.Report, error)
}

// AgendaRequest selects the topics for a one-shot agenda. Recommendation ids
// resolve against the deterministic recommendations; Recommendations are
// used as given, ahead of the resolved ones.
type AgendaRequest struct {
	RecommendationIDs []string                     `json:"recommendationIds"`
	Recommendations   []domain.TopicRecommendation `json:"recommendations"`
	CustomTopics      []string                     `json:"customTopics"`
	Duration          int                          `json:"duration"`
}

// AgendaResult is an agenda with its minutes readout.
type AgendaResult struct {
	Items      []domain.AgendaItem      `json:"items"`
	Allocation planner.AgendaAllocation `json:"allocation"`
}

type PlanningService interface {
	// RecommendTopics never fails on the model path; only a missing student
	// is an error. useAI false always takes the rule engine.
	RecommendTopics(ctx context.Context, studentID string, useAI bool) (*intelligence.TopicResult, error)
	BuildAgenda(ctx context.Context, studentID string, req AgendaRequest) (*AgendaResult, error)
	AgendaText(ctx context.Context, studentID string, meetingDate *time.Time, useAI bool) (*intelligence.AgendaTextResult, error)
}

type MeetingService interface {
	// Schedule validates the request and stores a scheduled meeting.
	Schedule(ctx context.Context, req domain.MeetingRequest) (*domain.Meeting, error)
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Meeting, error)
	Complete(ctx context.Context, id string, summary domain.MeetingSummary) error
	Cancel(ctx context.Context, id string) error
}

// SessionAction is one step of a planning session driven over an API. Only
// the fields its Type needs are read.
type SessionAction struct {
	Type     string             `json:"type"`
	Duration int                `json:"duration,omitempty"`
	Date     string             `json:"date,omitempty"`
	Time     string             `json:"time,omitempty"`
	TopicID  string             `json:"topicId,omitempty"`
	Topic    string             `json:"topic,omitempty"`
	Index    int                `json:"index,omitempty"`
	ItemID   string             `json:"itemId,omitempty"`
	Patch    *planner.ItemPatch `json:"patch,omitempty"`
	Title    string             `json:"title,omitempty"`
}

const (
	ActionSetSchedule           = "set_schedule"
	ActionNext                  = "next"
	ActionBack                  = "back"
	ActionToggleTopic           = "toggle_topic"
	ActionAddCustom             = "add_custom"
	ActionRemoveCustom          = "remove_custom"
	ActionRemoveItem            = "remove_item"
	ActionUpdateItem            = "update_item"
	ActionAddItem               = "add_item"
	ActionSetTitle              = "set_title"
	ActionConfirm               = "confirm"
	ActionScheduleWithoutAgenda = "schedule_without_agenda"
)

// SessionOutcome is the state after an action. Meeting is set, and the
// session gone, once the flow has booked a meeting.
type SessionOutcome struct {
	Session *session.Session `json:"session,omitempty"`
	Meeting *domain.Meeting  `json:"meeting,omitempty"`
}

type PlanningSessionService interface {
	Start(ctx context.Context, studentID string, variant planner.Variant) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Apply(ctx context.Context, id string, action SessionAction) (*SessionOutcome, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a roster import.
type ImportResult struct {
	Students   int `json:"students"`
	Milestones int `json:"milestones"`
	Meetings   int `json:"meetings"`
}

type ImportService interface {
	ImportRoster(ctx context.Context, filePath string) (*ImportResult, error)
	ImportRosterData(ctx context.Context, data []byte) (*ImportResult, error)
	ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema) (*ImportResult, error)
	// SeedIfEmpty imports data only when no student exists yet.
	SeedIfEmpty(ctx context.Context, data []byte) (*ImportResult, error)
}
