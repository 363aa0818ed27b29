package domain

import "time"

type SourceReference struct {
	Type  SourceType `json:"type"`
	ID    string     `json:"id,omitempty"`
	Title string     `json:"title,omitempty"`
}

type TopicRecommendation struct {
	ID              string           `json:"id"`
	Topic           string           `json:"topic"`
	Description     string           `json:"description,omitempty"`
	Category        TopicCategory    `json:"category"`
	Priority        Priority         `json:"priority"`
	Reason          string           `json:"reason"`
	SourceReference *SourceReference `json:"sourceReference,omitempty"`
}

type AgendaItem struct {
	ID              string           `json:"id"`
	Topic           string           `json:"topic"`
	Description     string           `json:"description,omitempty"`
	Source          Provenance       `json:"source"`
	SourceReason    string           `json:"sourceReason,omitempty"`
	SourceReference *SourceReference `json:"sourceReference,omitempty"`
	Duration        int              `json:"duration"`
	Covered         bool             `json:"covered"`
}

type RecommendedAction struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Status ActionStatus `json:"status"`
}

type MeetingSummary struct {
	Overview           string              `json:"overview"`
	KeyPoints          []string            `json:"keyPoints"`
	RecommendedActions []RecommendedAction `json:"recommendedActions"`
}

// PendingActions returns the recommended actions still awaiting a decision.
func (s MeetingSummary) PendingActions() []RecommendedAction {
	var out []RecommendedAction
	for _, a := range s.RecommendedActions {
		if a.Status == ActionPending {
			out = append(out, a)
		}
	}
	return out
}

type Meeting struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"studentId"`
	Title         string          `json:"title"`
	ScheduledDate time.Time       `json:"scheduledDate"`
	Duration      int             `json:"duration"`
	Status        MeetingStatus   `json:"status"`
	Agenda        []AgendaItem    `json:"agenda"`
	Summary       *MeetingSummary `json:"summary,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// HasPendingActions reports whether the meeting summary lists any pending action.
func (m Meeting) HasPendingActions() bool {
	return m.Summary != nil && len(m.Summary.PendingActions()) > 0
}

// MeetingRequest is the tuple a finished scheduling flow hands to the meeting store.
type MeetingRequest struct {
	StudentID     string       `json:"studentId"`
	Title         string       `json:"title"`
	ScheduledDate string       `json:"scheduledDate"`
	Duration      int          `json:"duration"`
	Agenda        []AgendaItem `json:"agenda"`
}
