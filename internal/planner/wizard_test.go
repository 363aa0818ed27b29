package planner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/counsel/internal/domain"
)

func TestNewWizard_Defaults(t *testing.T) {
	w := NewWizard("jessica-santiago", "Jessica", VariantFourStep)
	assert.Equal(t, StepDuration, w.Step)
	assert.Equal(t, 30, w.Duration)
	assert.Equal(t, "10:00", w.Time)
	assert.Empty(t, w.Date)
	assert.False(t, w.CanProceed())
	assert.Equal(t, []Step{StepDuration, StepTopics, StepAgenda, StepConfirm}, w.Steps())

	assert.Equal(t, []Step{StepDuration, StepTopicsAgenda}, NewWizard("s", "S", VariantTwoStep).Steps())
	assert.Equal(t, VariantTwoStep, NewWizard("s", "S", "bogus").Variant)
}

func TestWizard_DurationStepGated(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantTwoStep)

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.Equal(t, StepDuration, w.Step)

	w.SetSchedule(0, "2025-01-20", "10:00")
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)

	w.SetSchedule(45, "2025-01-20", "")
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)

	w.SetSchedule(45, "2025-01-20", "14:30")
	require.NoError(t, w.Next())
	assert.Equal(t, StepTopicsAgenda, w.Step)

	require.NoError(t, w.Next(), "last step is a no-op")
	assert.Equal(t, StepTopicsAgenda, w.Step)
}

func TestWizard_FourStepWalkAndBack(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantFourStep)
	w.SetSchedule(30, "2025-01-20", "10:00")
	w.SetRecommendations(recs(domain.PriorityHigh, domain.PriorityMedium))
	w.AddCustomTopic("Summer plans")

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step)

	w.Back()
	w.Back()
	w.Back()
	w.Back()
	assert.Equal(t, StepDuration, w.Step)
	assert.Equal(t, []string{"rec-a"}, w.SelectedIDs, "back keeps state")
	assert.Equal(t, []string{"Summer plans"}, w.CustomTopics)
	assert.Len(t, w.Agenda, 3)
}

func TestWizard_RecommendationsPreselectHigh(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantTwoStep)
	w.SetRecommendations(recs(domain.PriorityMedium, domain.PriorityHigh, domain.PriorityLow, domain.PriorityHigh))

	assert.Equal(t, []string{"rec-b", "rec-d"}, w.SelectedIDs)
	require.Len(t, w.Agenda, 3)
	assert.Equal(t, "Topic B", w.Title)
}

func TestWizard_SelectionFollowsListOrder(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantTwoStep)
	w.SetRecommendations(recs(domain.PriorityLow, domain.PriorityLow, domain.PriorityLow))
	w.ToggleTopic("rec-c")
	w.ToggleTopic("rec-a")

	selected := w.SelectedRecommendations()
	require.Len(t, selected, 2)
	assert.Equal(t, "rec-a", selected[0].ID)
	assert.Equal(t, "Topic A", w.Agenda[0].Topic)

	w.ToggleTopic("rec-a")
	assert.Equal(t, []string{"rec-c"}, w.SelectedIDs)
	assert.Equal(t, "Topic C", w.Agenda[0].Topic)
}

func TestWizard_ChangesRebuildAgenda(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantTwoStep)
	w.SetSchedule(30, "2025-01-20", "10:00")
	w.SetRecommendations(recs(domain.PriorityHigh))
	require.Len(t, w.Agenda, 2)
	assert.Equal(t, 25, w.Agenda[0].Duration)

	w.AddCustomTopic("  ")
	assert.Empty(t, w.CustomTopics)

	w.AddCustomTopic("Summer plans")
	require.Len(t, w.Agenda, 3)
	assert.Equal(t, 12, w.Agenda[0].Duration)

	w.SetSchedule(60, "2025-01-20", "10:00")
	assert.Equal(t, 27, w.Agenda[0].Duration)

	w.RemoveCustomTopic(5)
	w.RemoveCustomTopic(0)
	require.Len(t, w.Agenda, 2)
	assert.Equal(t, 55, w.Agenda[0].Duration)
}

func TestWizard_AgendaEdits(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantFourStep)
	w.SetSchedule(30, "2025-01-20", "10:00")
	w.SetRecommendations(recs(domain.PriorityHigh, domain.PriorityHigh))

	w.RemoveAgendaItem("agenda-new-1")
	assert.Equal(t, AgendaAllocation{Allocated: 17, Unallocated: 13}, w.Allocation())

	w.AddAgendaItem("Scholarships")
	require.Len(t, w.Agenda, 3)
	assert.Equal(t, 13, w.Agenda[1].Duration)

	minutes := 8
	w.UpdateAgendaItem("agenda-new-0", ItemPatch{Duration: &minutes})
	assert.Equal(t, 8, w.Agenda[0].Duration)
}

func TestWizard_Confirm(t *testing.T) {
	w := NewWizard("jessica-santiago", "Jessica", VariantFourStep)
	_, err := w.Confirm()
	assert.ErrorIs(t, err, ErrStepIncomplete)

	w.SetSchedule(30, "2025-01-20", "14:30")
	w.SetRecommendations(recs(domain.PriorityHigh))
	w.SetTitle("FAFSA push")

	req, err := w.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "jessica-santiago", req.StudentID)
	assert.Equal(t, "FAFSA push", req.Title)
	assert.Equal(t, "2025-01-20T14:30:00", req.ScheduledDate)
	assert.Equal(t, 30, req.Duration)
	assert.Len(t, req.Agenda, 2)

	assert.Equal(t, StepDuration, w.Step, "wizard resets after confirm")
	assert.Empty(t, w.Date)
	assert.Empty(t, w.Recommendations)
	assert.Equal(t, "jessica-santiago", w.StudentID)
}

func TestWizard_ConfirmDefaultTitle(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantTwoStep)
	w.SetSchedule(15, "2025-01-20", "09:00")

	req, err := w.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "Meeting with Jessica", req.Title)
	assert.NotNil(t, req.Agenda)
	assert.Empty(t, req.Agenda)
}

func TestWizard_ScheduleWithoutAgenda(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantFourStep)
	w.SetSchedule(45, "2025-01-20", "10:00")
	w.SetRecommendations(recs(domain.PriorityHigh))
	require.NoError(t, w.Next())

	req, err := w.ScheduleWithoutAgenda()
	require.NoError(t, err)
	assert.Equal(t, "Meeting with Jessica", req.Title)
	assert.Empty(t, req.Agenda)
	assert.Equal(t, 45, req.Duration)
	assert.Equal(t, StepDuration, w.Step)

	_, err = w.ScheduleWithoutAgenda()
	assert.ErrorIs(t, err, ErrStepIncomplete)
}

func TestWizard_RoundTripsThroughJSON(t *testing.T) {
	w := NewWizard("s", "Jessica", VariantFourStep)
	w.SetSchedule(30, "2025-01-20", "10:00")
	w.SetRecommendations(recs(domain.PriorityHigh, domain.PriorityLow))
	require.NoError(t, w.Next())

	raw, err := json.Marshal(w)
	require.NoError(t, err)

	var restored Wizard
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, *w, restored)
}

func TestValidDuration(t *testing.T) {
	for _, d := range []int{15, 30, 45, 60} {
		assert.True(t, ValidDuration(d))
	}
	assert.False(t, ValidDuration(20))
}

func TestParseScheduledDate(t *testing.T) {
	got, err := ParseScheduledDate("2025-01-20T14:30:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 20, 14, 30, 0, 0, time.UTC), got)

	_, err = ParseScheduledDate("tomorrow", time.UTC)
	assert.Error(t, err)
}
