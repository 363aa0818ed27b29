package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/planner"
)

// counselHuhTheme returns a huh theme using the formatter palette.
func counselHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// scheduleAnswers are the values the duration step collects.
type scheduleAnswers struct {
	Duration int
	Date     string
	Time     string
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM (24-hour)")
	}
	return nil
}

// wizardScheduleForm asks for the meeting length, date and time.
func wizardScheduleForm(studentName string, ans *scheduleAnswers) *huh.Form {
	options := make([]huh.Option[int], 0, len(planner.DurationOptions))
	for _, d := range planner.DurationOptions {
		options = append(options, huh.NewOption(fmt.Sprintf("%d minutes", d), d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Meeting with "+studentName).
				Description("How long?").
				Options(options...).
				Value(&ans.Duration),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&ans.Date),
			huh.NewInput().
				Title("Time").
				Placeholder(planner.DefaultTime).
				Validate(validateClock).
				Value(&ans.Time),
		),
	).WithTheme(counselHuhTheme()).WithShowHelp(false)
}

// topicAnswers are the values the topic step collects.
type topicAnswers struct {
	Selected []string
	Custom   string
}

// wizardTopicsForm offers the loaded recommendations, pre-selecting the
// wizard's current selection, plus free-text custom topics one per line.
func wizardTopicsForm(w *planner.Wizard, ans *topicAnswers) *huh.Form {
	ans.Selected = append([]string{}, w.SelectedIDs...)

	options := make([]huh.Option[string], 0, len(w.Recommendations))
	for _, r := range w.Recommendations {
		label := fmt.Sprintf("%s [%s]", r.Topic, r.Priority)
		options = append(options, huh.NewOption(label, r.ID).Selected(w.IsSelected(r.ID)))
	}

	fields := []huh.Field{}
	if len(options) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Topics to cover").
			Description("High-priority topics are pre-selected").
			Options(options...).
			Value(&ans.Selected))
	}
	fields = append(fields, huh.NewText().
		Title("Custom topics").
		Description("One per line; leave empty for none").
		Value(&ans.Custom))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(counselHuhTheme()).WithShowHelp(false)
}

// customTopicLines splits the custom-topics text into trimmed, non-empty topics.
func customTopicLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// confirmAnswers are the values the confirm step collects.
type confirmAnswers struct {
	Title      string
	WithAgenda bool
}

// wizardConfirmForm shows the agenda and asks for a title and how to book.
func wizardConfirmForm(w *planner.Wizard, ans *confirmAnswers) *huh.Form {
	ans.Title = w.Title
	if ans.Title == "" {
		ans.Title = w.DefaultTitle()
	}
	ans.WithAgenda = len(w.Agenda) > 0

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Agenda · %s %s · %s", w.Date, w.Time, formatter.FormatMinutes(w.Duration))).
				Description(formatter.FormatAgenda(w.Agenda, w.Allocation())),
			huh.NewInput().
				Title("Title").
				Value(&ans.Title),
			huh.NewConfirm().
				Title("Book this meeting").
				Affirmative("With agenda").
				Negative("Without agenda").
				Value(&ans.WithAgenda),
		),
	).WithTheme(counselHuhTheme()).WithShowHelp(false)
}
