package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

const untitledTopic = "Untitled Topic"

// normalizeTopics coerces model output into valid recommendations. Unknown
// categories become grade_level, unknown priorities become medium, and
// missing ids are synthesized from the element index and now. Repeated ids
// get the index appended so selection by id stays unambiguous.
func normalizeTopics(raw []aiTopic, now time.Time) []domain.TopicRecommendation {
	out := make([]domain.TopicRecommendation, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		rec := domain.TopicRecommendation{
			ID:          strings.TrimSpace(item.ID),
			Topic:       strings.TrimSpace(item.Topic),
			Description: strings.TrimSpace(item.Description),
			Category:    domain.ParseTopicCategory(item.Category),
			Priority:    domain.ParsePriority(item.Priority),
			Reason:      strings.TrimSpace(item.Reason),
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("ai-%d-%d", i, now.UnixMilli())
		}
		if seen[rec.ID] {
			rec.ID = fmt.Sprintf("%s-%d", rec.ID, i)
		}
		seen[rec.ID] = true
		if rec.Topic == "" {
			rec.Topic = untitledTopic
		}
		if ref := item.SourceReference; ref != nil {
			rec.SourceReference = &domain.SourceReference{
				Type:  domain.SourceType(ref.Type),
				ID:    ref.ID,
				Title: ref.Title,
			}
		}
		out = append(out, rec)
	}
	return out
}
