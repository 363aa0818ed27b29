package planner

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/counsel/internal/domain"
)

func TestBuildAgenda_Empty(t *testing.T) {
	got := BuildAgenda(nil, nil, 30)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildAgenda_Layout(t *testing.T) {
	got := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityLow), []string{"Summer plans"}, 45)

	want := []domain.AgendaItem{
		{
			ID: "agenda-new-0", Topic: "Topic A", Source: domain.ProvenanceAIRecommended, SourceReason: "because",
			SourceReference: &domain.SourceReference{Type: domain.SourceMilestone, ID: "m-a"}, Duration: 13,
		},
		{
			ID: "agenda-new-1", Topic: "Topic B", Source: domain.ProvenanceAIRecommended, SourceReason: "because",
			SourceReference: &domain.SourceReference{Type: domain.SourceMilestone, ID: "m-b"}, Duration: 13,
		},
		{ID: "agenda-custom-0", Topic: "Summer plans", Source: domain.ProvenanceCounselorAdded, Duration: 13},
		{
			ID: "agenda-wrapup", Topic: "Wrap-up & Next Steps", Description: "Summarize action items and schedule follow-up if needed",
			Source: domain.ProvenanceCounselorAdded, Duration: 5,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildAgenda mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAgenda_ThirtyMinutesFiveTopics(t *testing.T) {
	got := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityHigh, domain.PriorityMedium), []string{"x", "y"}, 30)
	require.Len(t, got, 6)
	for _, it := range got {
		assert.Equal(t, 5, it.Duration, it.ID)
	}
	assert.Equal(t, 0, Allocation(got, 30).Unallocated)
}

func TestBuildAgenda_ThirtyMinutesFourTopics(t *testing.T) {
	got := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow, domain.PriorityLow), nil, 30)
	require.Len(t, got, 5)
	for _, it := range got[:4] {
		assert.Equal(t, 6, it.Duration)
	}
	assert.Equal(t, AgendaAllocation{Allocated: 29, Unallocated: 1}, Allocation(got, 30))
}

func TestBuildAgenda_TooShortGoesNegative(t *testing.T) {
	got := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityHigh), nil, 4)
	require.Len(t, got, 3)
	assert.Equal(t, -1, got[0].Duration)
	assert.Equal(t, 5, got[2].Duration)
	assert.Equal(t, 1, Allocation(got, 4).Unallocated)
}

// TestBuildAgenda_Slicing property-tests item counts and the dropped
// remainder for random inputs.
func TestBuildAgenda_Slicing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		nSel, nCustom := rng.Intn(6), rng.Intn(4)
		n := nSel + nCustom
		d := 15 + rng.Intn(106)

		priorities := make([]domain.Priority, nSel)
		for i := range priorities {
			priorities[i] = domain.PriorityMedium
		}
		custom := make([]string, nCustom)
		for i := range custom {
			custom[i] = "custom"
		}

		got := BuildAgenda(recs(priorities...), custom, d)
		if n == 0 {
			assert.Empty(t, got, "trial %d", trial)
			continue
		}

		require.Len(t, got, n+1, "trial %d", trial)
		last := got[len(got)-1]
		assert.Equal(t, "agenda-wrapup", last.ID)
		assert.Equal(t, WrapUpMinutes, last.Duration)

		sum := 0
		seen := map[string]bool{}
		for _, it := range got {
			assert.False(t, seen[it.ID], "trial %d: duplicate id", trial)
			seen[it.ID] = true
			assert.False(t, it.Covered)
		}
		for _, it := range got[:n] {
			sum += it.Duration
		}
		assert.Equal(t, ((d-5)/n)*n, sum, "trial %d", trial)
		assert.Equal(t, (d-5)%n, d-5-sum, "trial %d", trial)
	}
}

func TestRemoveItem(t *testing.T) {
	agenda := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityLow), nil, 30)
	got := RemoveItem(agenda, "agenda-new-0")
	require.Len(t, got, 2)
	assert.Equal(t, "agenda-new-1", got[0].ID)
	assert.Len(t, agenda, 3)

	assert.Len(t, RemoveItem(agenda, "missing"), 3)
}

func TestUpdateItem(t *testing.T) {
	agenda := BuildAgenda(recs(domain.PriorityHigh), nil, 30)
	topic, minutes, covered := "FAFSA walkthrough", 20, true

	got := UpdateItem(agenda, "agenda-new-0", ItemPatch{Topic: &topic, Duration: &minutes, Covered: &covered})
	assert.Equal(t, "FAFSA walkthrough", got[0].Topic)
	assert.Equal(t, 20, got[0].Duration)
	assert.True(t, got[0].Covered)
	assert.Equal(t, "because", got[0].SourceReason)
	assert.Equal(t, "Topic A", agenda[0].Topic, "input must not be mutated")
}

func TestAddItem_InsertsBeforeWrapUp(t *testing.T) {
	agenda := BuildAgenda(recs(domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow, domain.PriorityLow), nil, 45)
	// 4 x 10 + 5 leaves nothing, so the new item gets the 5 minute floor.
	got := AddItem(agenda, "Scholarships", 45)

	require.Len(t, got, 6)
	added := got[4]
	assert.Equal(t, "Scholarships", added.Topic)
	assert.Equal(t, 5, added.Duration)
	assert.Equal(t, domain.ProvenanceCounselorAdded, added.Source)
	assert.True(t, strings.HasPrefix(added.ID, "agenda-new-"))
	assert.Equal(t, "agenda-wrapup", got[5].ID)

	opts := cmpopts.IgnoreFields(domain.AgendaItem{}, "ID")
	assert.True(t, cmp.Equal(agenda[:4], got[:4], opts))
}

func TestAddItem_TakesRemainingMinutes(t *testing.T) {
	agenda := BuildAgenda(recs(domain.PriorityHigh), nil, 30)
	agenda = RemoveItem(agenda, "agenda-new-0")

	got := AddItem(agenda, "Open questions", 30)
	require.Len(t, got, 2)
	assert.Equal(t, 25, got[0].Duration)

	first := AddItem(nil, "Only", 30)
	require.Len(t, first, 1)
	assert.Equal(t, 30, first[0].Duration)
}

func TestAddItem_UniqueIDs(t *testing.T) {
	agenda := BuildAgenda(nil, []string{"x"}, 30)
	agenda = AddItem(agenda, "a", 30)
	agenda = AddItem(agenda, "b", 30)
	assert.NotEqual(t, agenda[1].ID, agenda[2].ID)
}
