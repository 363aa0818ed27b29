package intelligence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/llm"
	"github.com/alexanderramin/counsel/internal/testutil"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

// mockLLMClient returns a canned response or error.
type mockLLMClient struct {
	response string
	err      error
	calls    atomic.Int32
}

func (m *mockLLMClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gemini-2.0-flash"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

// blockingClient holds every call until release is closed or the caller's
// context ends.
type blockingClient struct {
	release  chan struct{}
	response string
	calls    atomic.Int32
}

func newBlockingClient(response string) *blockingClient {
	return &blockingClient{release: make(chan struct{}), response: response}
}

func (b *blockingClient) Generate(ctx context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
		return &llm.GenerateResponse{Text: b.response}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingClient) Available(context.Context) bool { return true }

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

// geminiEnvelope wraps text the way generateContent does.
func geminiEnvelope(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			}},
		},
		"modelVersion": "gemini-2.0-flash-001",
	}
}

// pinnedTopics fixes the service clock so results can be compared with
// planner output.
func pinnedTopics(client llm.LLMClient) *topicService {
	svc := NewTopicService(client, nil).(*topicService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func pinnedAgendaText(client llm.LLMClient) *agendaTextService {
	svc := NewAgendaTextService(client, nil).(*agendaTextService)
	svc.now = func() time.Time { return testNow }
	return svc
}

// counselingStudent has a near deadline, an active goal, a top pick and a
// completed meeting with a pending action.
func counselingStudent() domain.StudentData {
	fafsa := testutil.NewTestMilestone("Submit FAFSA",
		testutil.WithDueDate(time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC)),
		testutil.WithProgress(33),
	)
	d := testutil.NewTestStudentData("Jessica", "Santiago",
		testutil.WithStudentID("student-jessica"),
		testutil.WithGrade(12),
		testutil.WithGPA(3.8),
		testutil.WithTestScores(1340, 29),
		testutil.WithProfile(domain.StudentProfile{
			Strengths:       []string{"Leadership", "Writing"},
			CareerVision:    "Become a pediatric nurse",
			PersonalityType: "The Caregiver",
			ExperienceCount: 3,
			TopDurableSkills: []domain.DurableSkill{
				{Name: "Communication", Level: "Advanced"},
			},
		}),
		testutil.WithMilestones(fafsa),
		testutil.WithGoal("Finish college essays", 1, 4),
		testutil.WithBookmark(domain.BookmarkCareer, "Registered Nurse", true),
		testutil.WithBookmark(domain.BookmarkSchool, "State University", true),
		testutil.WithReflection("What I learned from volunteering", "Service Learning",
			time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)),
		testutil.WithCompletedMeeting("Fall check-in", time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC),
			"Draft personal statement"),
	)
	return *d
}
