package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/planner"
)

func TestWizardValidators(t *testing.T) {
	assert.NoError(t, validateDate("2025-02-03"))
	assert.NoError(t, validateDate(" 2025-02-03 "))
	assert.Error(t, validateDate("02/03/2025"))
	assert.Error(t, validateDate(""))

	assert.NoError(t, validateClock("09:30"))
	assert.NoError(t, validateClock("23:59"))
	assert.Error(t, validateClock("9:30pm"))
	assert.Error(t, validateClock("24:00"))
}

func TestCustomTopicLines(t *testing.T) {
	assert.Equal(t, []string{"Scholarships", "Summer job"}, customTopicLines("  Scholarships\n\n Summer job \n"))
	assert.Nil(t, customTopicLines("\n  \n"))
}

func TestWizardForms_SeedAnswersFromWizard(t *testing.T) {
	w := planner.NewWizard("s1", "Jessica", planner.VariantFourStep)
	w.SetSchedule(45, "2025-02-03", "14:30")
	w.SetRecommendations([]domain.TopicRecommendation{
		{ID: "a", Topic: "FAFSA", Priority: domain.PriorityHigh},
		{ID: "b", Topic: "Reading list", Priority: domain.PriorityLow},
	})

	var topics topicAnswers
	assert.NotNil(t, wizardTopicsForm(w, &topics))
	assert.Equal(t, []string{"a"}, topics.Selected)

	w.RebuildAgenda()
	var confirm confirmAnswers
	assert.NotNil(t, wizardConfirmForm(w, &confirm))
	assert.True(t, confirm.WithAgenda)
	assert.NotEmpty(t, confirm.Title)

	sched := scheduleAnswers{Duration: 30}
	assert.NotNil(t, wizardScheduleForm("Jessica Rivera", &sched))
}

func TestWizardConfirmForm_NoAgendaDefaultsTitle(t *testing.T) {
	w := planner.NewWizard("s1", "Jessica", planner.VariantTwoStep)

	var confirm confirmAnswers
	wizardConfirmForm(w, &confirm)
	assert.Equal(t, "Meeting with Jessica", confirm.Title)
	assert.False(t, confirm.WithAgenda)
}
