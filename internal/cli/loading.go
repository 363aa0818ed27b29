package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/counsel/internal/cli/formatter"
	"github.com/alexanderramin/counsel/internal/intelligence"
)

type loadedMsg[T any] struct{ val T }

// loadingModel shows a spinner until a future resolves. ctrl+c or esc
// cancels the work; the future then resolves with its fallback value, so the
// model always ends with a result.
type loadingModel[T any] struct {
	spinner   spinner.Model
	message   string
	future    *intelligence.Future[T]
	result    T
	done      bool
	cancelled bool
}

func newLoadingModel[T any](message string, f *intelligence.Future[T]) loadingModel[T] {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return loadingModel[T]{spinner: s, message: message, future: f}
}

func (m loadingModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m loadingModel[T]) wait() tea.Msg {
	v, _ := m.future.Wait(context.Background())
	return loadedMsg[T]{val: v}
}

func (m loadingModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		m.result = msg.val
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if !m.cancelled {
				m.cancelled = true
				m.future.Cancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loadingModel[T]) View() string {
	if m.done {
		return ""
	}
	msg := m.message
	if m.cancelled {
		msg = "Cancelling, falling back to the rule engine..."
	}
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), formatter.Dim(msg))
}

// awaitWithSpinner waits for f, rendering a spinner on out when interactive.
func awaitWithSpinner[T any](ctx context.Context, app *App, in io.Reader, out io.Writer, message string, f *intelligence.Future[T]) (T, error) {
	if !app.interactive() {
		return f.Wait(ctx)
	}

	p := tea.NewProgram(newLoadingModel(message, f),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		// The program was interrupted before the model saw the result.
		f.Cancel()
		return f.Wait(context.WithoutCancel(ctx))
	}
	return final.(loadingModel[T]).result, nil
}
