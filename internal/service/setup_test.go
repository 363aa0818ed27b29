package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/repository"
	"github.com/alexanderramin/counsel/internal/session"
	"github.com/alexanderramin/counsel/internal/testutil"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type memoryRepos struct {
	students *repository.MemoryStudentRepo
	meetings *repository.MemoryMeetingRepo
}

func setupMemory(t *testing.T, students ...*domain.StudentData) memoryRepos {
	t.Helper()
	store := repository.NewMemoryStore()
	repos := memoryRepos{students: store.Students(), meetings: store.Meetings()}
	for _, d := range students {
		require.NoError(t, repos.students.Save(context.Background(), d))
	}
	return repos
}

// jessica is due on FAFSA in five days and owes a follow-up from her last meeting.
func jessica() *domain.StudentData {
	due := time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC)
	return testutil.NewTestStudentData("Jessica", "Santiago",
		testutil.WithStudentID("jessica"),
		testutil.WithGPA(3.87),
		testutil.WithMilestones(
			testutil.NewTestMilestone("Complete Career Assessment", testutil.Done()),
			testutil.NewTestMilestone("Submit FAFSA Application", testutil.WithDueDate(due), testutil.WithProgress(33)),
		),
		testutil.WithGoal("Finish college essays", 1, 4),
		testutil.WithBookmark(domain.BookmarkCareer, "Registered Nurse", true),
		testutil.WithCompletedMeeting("Fall check-in", time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC), "Draft personal statement"),
	)
}

func blake() *domain.StudentData {
	return testutil.NewTestStudentData("Blake", "Struggling",
		testutil.WithStudentID("blake"),
		testutil.WithGrade(11),
		testutil.WithGPA(1.8),
		testutil.WithStoredStatus(domain.OffTrack),
	)
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// countingTopics is a TopicService that returns fixed topics and counts calls.
type countingTopics struct {
	topics []domain.TopicRecommendation
	calls  atomic.Int32
}

func (c *countingTopics) result() intelligence.TopicResult {
	c.calls.Add(1)
	return intelligence.TopicResult{Topics: c.topics, Source: intelligence.SourceAI}
}

func (c *countingTopics) Recommend(context.Context, domain.StudentData) intelligence.TopicResult {
	return c.result()
}

func (c *countingTopics) RecommendAsync(ctx context.Context, _ string, data domain.StudentData) *intelligence.Future[intelligence.TopicResult] {
	return intelligence.Resolved(c.result())
}

func fixedTopics() []domain.TopicRecommendation {
	return []domain.TopicRecommendation{
		{ID: "t-high", Topic: "FAFSA deadline", Category: domain.CategoryDeadline, Priority: domain.PriorityHigh},
		{ID: "t-med", Topic: "College essays", Category: domain.CategoryGoal, Priority: domain.PriorityMedium},
		{ID: "t-low", Topic: "Career bookmarks", Category: domain.CategoryBookmark, Priority: domain.PriorityLow},
	}
}

type sessionFixture struct {
	svc      *planningSessionService
	store    *session.MemoryStore
	topics   *countingTopics
	meetings repository.MeetingRepo
}

func setupSessions(t *testing.T) sessionFixture {
	t.Helper()
	repos := setupMemory(t, jessica())
	topics := &countingTopics{topics: fixedTopics()}
	store := session.NewMemoryStore(time.Hour)
	meetings := NewMeetingService(repos.students, repos.meetings, time.UTC)
	svc := NewPlanningSessionService(repos.students, topics, meetings, store).(*planningSessionService)
	svc.now = fixedNow
	return sessionFixture{svc: svc, store: store, topics: topics, meetings: repos.meetings}
}

func startFourStep(t *testing.T, f sessionFixture) string {
	t.Helper()
	sess, err := f.svc.Start(context.Background(), "jessica", planner.VariantFourStep)
	require.NoError(t, err)
	return sess.ID
}
