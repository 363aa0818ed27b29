package cli

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/llm"
	"github.com/alexanderramin/counsel/internal/teatest"
	"github.com/alexanderramin/counsel/internal/testutil"
)

// hangingClient never answers until the caller gives up.
type hangingClient struct{}

func (hangingClient) Generate(ctx context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingClient) Available(context.Context) bool { return true }

func TestLoadingModel_ResolvedFutureQuits(t *testing.T) {
	want := intelligence.TopicResult{Source: intelligence.SourceAI}
	d := teatest.New(t, newLoadingModel("Loading...", intelligence.Resolved(want)))
	d.DrainInit()

	assert.True(t, d.Quitting)
	m := d.Model.(loadingModel[intelligence.TopicResult])
	assert.True(t, m.done)
	assert.Equal(t, intelligence.SourceAI, m.result.Source)
	assert.Empty(t, d.View())
}

func TestLoadingModel_ShowsSpinnerWhilePending(t *testing.T) {
	svc := intelligence.NewTopicService(hangingClient{}, nil)
	data := testutil.NewTestStudentData("Ana", "Ruiz")
	f := svc.RecommendAsync(context.Background(), "pending", *data)
	t.Cleanup(f.Cancel)

	d := teatest.New(t, newLoadingModel("Asking for topic ideas...", f))
	d.DrainInit()

	assert.False(t, d.Quitting)
	assert.Contains(t, d.View(), "Asking for topic ideas...")

	d.Send(spinner.TickMsg{})
	assert.Contains(t, d.View(), "Asking for topic ideas...")
}

func TestLoadingModel_CtrlCCancelsToFallback(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc := intelligence.NewTopicService(hangingClient{}, nil)
	data := testutil.NewTestStudentData("Ana", "Ruiz", testutil.WithGrade(12))
	f := svc.RecommendAsync(context.Background(), "cancel-me", *data)

	d := teatest.New(t, newLoadingModel("Asking for topic ideas...", f))
	d.DrainInit()
	require.False(t, d.Quitting)

	d.PressCtrlC()
	assert.Contains(t, d.View(), "Cancelling")

	select {
	case <-f.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("future did not resolve after cancel")
	}
	res, err := f.Wait(context.Background())
	require.NoError(t, err)
	d.Send(loadedMsg[intelligence.TopicResult]{val: res})

	assert.True(t, d.Quitting)
	m := d.Model.(loadingModel[intelligence.TopicResult])
	assert.Equal(t, intelligence.SourceDeterministic, m.result.Source)
	assert.NotEmpty(t, m.result.Topics, "the rule engine always has a grade-level topic")
}

func TestAwaitWithSpinner_NonInteractiveWaits(t *testing.T) {
	app := &App{IsInteractive: func() bool { return false }}
	want := intelligence.TopicResult{Topics: []domain.TopicRecommendation{{ID: "x"}}, Source: intelligence.SourceAI}

	got, err := awaitWithSpinner(context.Background(), app, nil, nil, "unused", intelligence.Resolved(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
