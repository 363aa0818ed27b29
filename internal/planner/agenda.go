package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
)

// WrapUpMinutes is reserved at the end of every non-empty agenda.
const WrapUpMinutes = 5

const (
	wrapUpID          = "agenda-wrapup"
	wrapUpTopic       = "Wrap-up & Next Steps"
	wrapUpDescription = "Summarize action items and schedule follow-up if needed"
)

// BuildAgenda time-slices a meeting across the selected recommendations and
// custom topics, followed by a fixed wrap-up. Every item gets
// floor((total-5)/n) minutes; the remainder is left unallocated and the value
// is not clamped, so a meeting too short for its topics yields negative
// durations that Allocation surfaces.
func BuildAgenda(selected []domain.TopicRecommendation, custom []string, totalMinutes int) []domain.AgendaItem {
	n := len(selected) + len(custom)
	if n == 0 {
		return []domain.AgendaItem{}
	}

	per := floorDiv(totalMinutes-WrapUpMinutes, n)
	items := make([]domain.AgendaItem, 0, n+1)

	for i, rec := range selected {
		var ref *domain.SourceReference
		if rec.SourceReference != nil {
			ref = &domain.SourceReference{Type: rec.SourceReference.Type, ID: rec.SourceReference.ID}
		}
		items = append(items, domain.AgendaItem{
			ID:              fmt.Sprintf("agenda-new-%d", i),
			Topic:           rec.Topic,
			Description:     rec.Description,
			Source:          domain.ProvenanceAIRecommended,
			SourceReason:    rec.Reason,
			SourceReference: ref,
			Duration:        per,
		})
	}

	for i, topic := range custom {
		items = append(items, domain.AgendaItem{
			ID:       fmt.Sprintf("agenda-custom-%d", i),
			Topic:    topic,
			Source:   domain.ProvenanceCounselorAdded,
			Duration: per,
		})
	}

	return append(items, wrapUpItem())
}

func wrapUpItem() domain.AgendaItem {
	return domain.AgendaItem{
		ID:          wrapUpID,
		Topic:       wrapUpTopic,
		Description: wrapUpDescription,
		Source:      domain.ProvenanceCounselorAdded,
		Duration:    WrapUpMinutes,
	}
}

// floorDiv rounds toward negative infinity, unlike Go's integer division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// AgendaAllocation is the minutes readout shown next to an agenda.
type AgendaAllocation struct {
	Allocated   int `json:"allocated"`
	Unallocated int `json:"unallocated"`
}

// Allocation sums the item durations. Unallocated is negative when the
// agenda runs over the meeting length.
func Allocation(items []domain.AgendaItem, totalMinutes int) AgendaAllocation {
	sum := 0
	for _, it := range items {
		sum += it.Duration
	}
	return AgendaAllocation{Allocated: sum, Unallocated: totalMinutes - sum}
}

// RemoveItem returns the agenda without the item with the given id.
func RemoveItem(items []domain.AgendaItem, id string) []domain.AgendaItem {
	out := make([]domain.AgendaItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// ItemPatch holds the editable fields of an agenda item. Nil fields are left
// unchanged.
type ItemPatch struct {
	Topic       *string `json:"topic,omitempty"`
	Description *string `json:"description,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	Covered     *bool   `json:"covered,omitempty"`
}

// UpdateItem applies patch to the item with the given id. Unknown ids leave
// the agenda unchanged.
func UpdateItem(items []domain.AgendaItem, id string, patch ItemPatch) []domain.AgendaItem {
	out := make([]domain.AgendaItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Topic != nil {
			out[i].Topic = *patch.Topic
		}
		if patch.Description != nil {
			out[i].Description = *patch.Description
		}
		if patch.Duration != nil {
			out[i].Duration = *patch.Duration
		}
		if patch.Covered != nil {
			out[i].Covered = *patch.Covered
		}
	}
	return out
}

// AddItem inserts a counselor topic just before the last item (the wrap-up)
// and gives it the unallocated minutes, at least 5.
func AddItem(items []domain.AgendaItem, topic string, totalMinutes int) []domain.AgendaItem {
	remaining := Allocation(items, totalMinutes).Unallocated
	item := domain.AgendaItem{
		ID:       "agenda-new-" + uuid.New().String(),
		Topic:    topic,
		Source:   domain.ProvenanceCounselorAdded,
		Duration: max(WrapUpMinutes, remaining),
	}

	if len(items) == 0 {
		return []domain.AgendaItem{item}
	}
	out := make([]domain.AgendaItem, 0, len(items)+1)
	out = append(out, items[:len(items)-1]...)
	out = append(out, item)
	return append(out, items[len(items)-1])
}
