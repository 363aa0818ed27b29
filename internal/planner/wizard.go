package planner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

// ErrStepIncomplete is returned when the schedule step is missing a
// duration, date or time.
var ErrStepIncomplete = errors.New("step incomplete: duration, date and time are required")

type Step string

const (
	StepDuration     Step = "duration"
	StepTopics       Step = "topics"
	StepAgenda       Step = "agenda"
	StepConfirm      Step = "confirm"
	StepTopicsAgenda Step = "topics_agenda"
)

type Variant string

const (
	VariantFourStep Variant = "four_step"
	VariantTwoStep  Variant = "two_step"
)

var variantSteps = map[Variant][]Step{
	VariantFourStep: {StepDuration, StepTopics, StepAgenda, StepConfirm},
	VariantTwoStep:  {StepDuration, StepTopicsAgenda},
}

// ParseVariant maps unknown values to the two-step flow.
func ParseVariant(s string) Variant {
	if Variant(s) == VariantFourStep {
		return VariantFourStep
	}
	return VariantTwoStep
}

const (
	DefaultDuration = 30
	DefaultTime     = "10:00"
)

// DurationOptions are the meeting lengths a counselor can pick from.
var DurationOptions = []int{15, 30, 45, 60}

// ValidDuration reports whether d is one of DurationOptions.
func ValidDuration(d int) bool {
	return slices.Contains(DurationOptions, d)
}

// Wizard is the state of one scheduling flow. It is plain data so a session
// store can persist it between requests.
type Wizard struct {
	StudentID string  `json:"studentId"`
	FirstName string  `json:"firstName"`
	Variant   Variant `json:"variant"`
	Step      Step    `json:"step"`

	Duration int    `json:"duration"`
	Date     string `json:"date"`
	Time     string `json:"time"`

	Recommendations       []domain.TopicRecommendation `json:"recommendations"`
	RecommendationsLoaded bool                         `json:"recommendationsLoaded"`
	SelectedIDs           []string                     `json:"selectedIds"`
	CustomTopics          []string                     `json:"customTopics"`
	Agenda                []domain.AgendaItem          `json:"agenda"`
	Title                 string                       `json:"title"`
}

// NewWizard starts a flow at the duration step with the default length and time.
func NewWizard(studentID, firstName string, variant Variant) *Wizard {
	w := &Wizard{StudentID: studentID, FirstName: firstName, Variant: variant}
	w.Reset()
	return w
}

// Reset clears all flow state but keeps the student and variant.
func (w *Wizard) Reset() {
	*w = Wizard{
		StudentID:    w.StudentID,
		FirstName:    w.FirstName,
		Variant:      ParseVariant(string(w.Variant)),
		Step:         StepDuration,
		Duration:     DefaultDuration,
		Time:         DefaultTime,
		SelectedIDs:  []string{},
		CustomTopics: []string{},
		Agenda:       []domain.AgendaItem{},
	}
}

func (w *Wizard) Steps() []Step {
	return variantSteps[ParseVariant(string(w.Variant))]
}

func (w *Wizard) stepIndex() int {
	return slices.Index(w.Steps(), w.Step)
}

// ScheduleComplete reports whether the duration step has everything it needs.
func (w *Wizard) ScheduleComplete() bool {
	return w.Duration > 0 && w.Date != "" && w.Time != ""
}

// CanProceed gates only the duration step; later steps always proceed.
func (w *Wizard) CanProceed() bool {
	if w.Step == StepDuration {
		return w.ScheduleComplete()
	}
	return true
}

// Next advances one step. It is a no-op on the last step.
func (w *Wizard) Next() error {
	if !w.CanProceed() {
		return ErrStepIncomplete
	}
	steps := w.Steps()
	i := w.stepIndex()
	if i < 0 || i+1 >= len(steps) {
		return nil
	}
	w.Step = steps[i+1]
	if w.Step == StepTopics || w.Step == StepTopicsAgenda {
		w.RebuildAgenda()
	}
	return nil
}

// Back moves one step back without discarding any state.
func (w *Wizard) Back() {
	if i := w.stepIndex(); i > 0 {
		w.Step = w.Steps()[i-1]
	}
}

// SetSchedule records the meeting length, date (YYYY-MM-DD) and time (HH:MM).
func (w *Wizard) SetSchedule(duration int, date, clock string) {
	changed := duration != w.Duration
	w.Duration = duration
	w.Date = strings.TrimSpace(date)
	w.Time = strings.TrimSpace(clock)
	if changed {
		w.RebuildAgenda()
	}
}

// SetRecommendations loads the topic list and pre-selects every high
// priority recommendation.
func (w *Wizard) SetRecommendations(recs []domain.TopicRecommendation) {
	w.Recommendations = recs
	w.RecommendationsLoaded = true
	w.SelectedIDs = []string{}
	for _, r := range recs {
		if r.Priority == domain.PriorityHigh {
			w.SelectedIDs = append(w.SelectedIDs, r.ID)
		}
	}
	w.RebuildAgenda()
}

func (w *Wizard) IsSelected(id string) bool {
	return slices.Contains(w.SelectedIDs, id)
}

// ToggleTopic selects or deselects a recommendation by id.
func (w *Wizard) ToggleTopic(id string) {
	if i := slices.Index(w.SelectedIDs, id); i >= 0 {
		w.SelectedIDs = slices.Delete(w.SelectedIDs, i, i+1)
	} else {
		w.SelectedIDs = append(w.SelectedIDs, id)
	}
	w.RebuildAgenda()
}

// SetSelection replaces the selected ids wholesale.
func (w *Wizard) SetSelection(ids []string) {
	w.SelectedIDs = append([]string{}, ids...)
	w.RebuildAgenda()
}

// AddCustomTopic appends a counselor topic. Blank topics are ignored.
func (w *Wizard) AddCustomTopic(topic string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	w.CustomTopics = append(w.CustomTopics, topic)
	w.RebuildAgenda()
}

// RemoveCustomTopic drops the custom topic at index; out of range is a no-op.
func (w *Wizard) RemoveCustomTopic(index int) {
	if index < 0 || index >= len(w.CustomTopics) {
		return
	}
	w.CustomTopics = slices.Delete(w.CustomTopics, index, index+1)
	w.RebuildAgenda()
}

// SelectedRecommendations returns the selected recommendations in list order.
func (w *Wizard) SelectedRecommendations() []domain.TopicRecommendation {
	var out []domain.TopicRecommendation
	for _, r := range w.Recommendations {
		if w.IsSelected(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// RebuildAgenda regenerates the agenda from the current selection, custom
// topics and duration, and fills in the default title if none is set.
func (w *Wizard) RebuildAgenda() {
	w.Agenda = BuildAgenda(w.SelectedRecommendations(), w.CustomTopics, w.Duration)
	if w.Title == "" && len(w.Agenda) > 0 {
		w.Title = w.Agenda[0].Topic
	}
}

func (w *Wizard) SetTitle(title string) {
	w.Title = strings.TrimSpace(title)
}

func (w *Wizard) RemoveAgendaItem(id string) {
	w.Agenda = RemoveItem(w.Agenda, id)
}

func (w *Wizard) UpdateAgendaItem(id string, patch ItemPatch) {
	w.Agenda = UpdateItem(w.Agenda, id, patch)
}

func (w *Wizard) AddAgendaItem(topic string) {
	w.Agenda = AddItem(w.Agenda, strings.TrimSpace(topic), w.Duration)
}

// Allocation reports the minutes assigned against the meeting length.
func (w *Wizard) Allocation() AgendaAllocation {
	return Allocation(w.Agenda, w.Duration)
}

// DefaultTitle is used when no agenda topic or explicit title is available.
func (w *Wizard) DefaultTitle() string {
	return "Meeting with " + w.FirstName
}

// ScheduledDate joins the date and time into a local date-time string.
func (w *Wizard) ScheduledDate() string {
	return fmt.Sprintf("%sT%s:00", w.Date, w.Time)
}

// Confirm produces the meeting request for the current agenda and resets the
// wizard.
func (w *Wizard) Confirm() (domain.MeetingRequest, error) {
	if !w.ScheduleComplete() {
		return domain.MeetingRequest{}, ErrStepIncomplete
	}
	title := w.Title
	if title == "" {
		title = w.DefaultTitle()
	}
	agenda := w.Agenda
	if agenda == nil {
		agenda = []domain.AgendaItem{}
	}
	req := domain.MeetingRequest{
		StudentID:     w.StudentID,
		Title:         title,
		ScheduledDate: w.ScheduledDate(),
		Duration:      w.Duration,
		Agenda:        agenda,
	}
	w.Reset()
	return req, nil
}

// ScheduleWithoutAgenda books the meeting with an empty agenda and the
// default title. It is available from any step once the schedule is set.
func (w *Wizard) ScheduleWithoutAgenda() (domain.MeetingRequest, error) {
	if !w.ScheduleComplete() {
		return domain.MeetingRequest{}, ErrStepIncomplete
	}
	req := domain.MeetingRequest{
		StudentID:     w.StudentID,
		Title:         w.DefaultTitle(),
		ScheduledDate: w.ScheduledDate(),
		Duration:      w.Duration,
		Agenda:        []domain.AgendaItem{},
	}
	w.Reset()
	return req, nil
}

// ParseScheduledDate parses the wizard's date-time string in loc.
func ParseScheduledDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse scheduled date %q: expected YYYY-MM-DDTHH:MM[:SS]", s)
}
