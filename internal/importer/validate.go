package importer

import (
	"fmt"
	"math"
	"time"
)

var (
	validStandings        = map[string]bool{"on_track": true, "off_track": true}
	validMilestoneSources = map[string]bool{"system_generated": true, "custom": true}
	validMilestoneStatus  = map[string]bool{"done": true, "not_done": true}
	validGoalStatuses     = map[string]bool{"active": true, "completed": true, "archived": true}
	validBookmarkTypes    = map[string]bool{"career": true, "school": true, "program": true}
	validMeetingStatuses  = map[string]bool{"scheduled": true, "completed": true, "cancelled": true}
	validActionStatuses   = map[string]bool{"pending": true, "accepted": true, "dismissed": true}
)

// ValidateRoster checks the roster for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateRoster(schema *RosterSchema) []error {
	var errs []error
	if len(schema.Students) == 0 {
		return []error{fmt.Errorf("students: at least one student is required")}
	}

	ids := make(map[string]bool)
	for i, s := range schema.Students {
		prefix := fmt.Sprintf("students[%d]", i)
		if s.ID != "" {
			if ids[s.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, s.ID))
			}
			ids[s.ID] = true
		}
		errs = append(errs, validateStudent(prefix, &s)...)
	}
	return errs
}

func validateStudent(prefix string, s *StudentImport) []error {
	var errs []error

	if s.FirstName == "" {
		errs = append(errs, fmt.Errorf("%s.first_name is required", prefix))
	}
	if s.LastName == "" {
		errs = append(errs, fmt.Errorf("%s.last_name is required", prefix))
	}
	if s.Grade < 9 || s.Grade > 12 {
		errs = append(errs, fmt.Errorf("%s.grade: %d is outside 9-12", prefix, s.Grade))
	}
	if math.IsNaN(s.GPA) || s.GPA < 0 || s.GPA > 5 {
		errs = append(errs, fmt.Errorf("%s.gpa: %v is outside 0-5", prefix, s.GPA))
	}
	if s.ReadinessScore < 0 || s.ReadinessScore > 100 {
		errs = append(errs, fmt.Errorf("%s.readiness_score: %d is outside 0-100", prefix, s.ReadinessScore))
	}
	errs = append(errs, validateEnum(prefix+".on_track_status", s.OnTrackStatus, validStandings)...)

	milestoneIDs := make(map[string]bool)
	for i, m := range s.Milestones {
		p := fmt.Sprintf("%s.milestones[%d]", prefix, i)
		errs = append(errs, validateRef(p, m.ID, milestoneIDs)...)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", p))
		}
		if m.Progress < 0 || m.Progress > 100 {
			errs = append(errs, fmt.Errorf("%s.progress: %d is outside 0-100", p, m.Progress))
		}
		errs = append(errs, validateEnum(p+".source", m.Source, validMilestoneSources)...)
		errs = append(errs, validateEnum(p+".status", m.Status, validMilestoneStatus)...)
		errs = append(errs, validateOptionalDate(p+".due_date", m.DueDate)...)
		errs = append(errs, validateOptionalDate(p+".completed_at", m.CompletedAt)...)
	}

	for i, f := range s.QualityFlags {
		p := fmt.Sprintf("%s.quality_flags[%d]", prefix, i)
		if !milestoneIDs[f.MilestoneID] {
			errs = append(errs, fmt.Errorf("%s.milestone_id: unknown milestone %q", p, f.MilestoneID))
		}
		errs = append(errs, validateOptionalDate(p+".flagged_at", optional(f.FlaggedAt))...)
	}

	goalIDs := make(map[string]bool)
	for i, g := range s.Goals {
		p := fmt.Sprintf("%s.goals[%d]", prefix, i)
		errs = append(errs, validateRef(p, g.ID, goalIDs)...)
		if g.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", p))
		}
		errs = append(errs, validateEnum(p+".status", g.Status, validGoalStatuses)...)
		subtaskIDs := make(map[string]bool)
		for j, st := range g.Subtasks {
			errs = append(errs, validateRef(fmt.Sprintf("%s.subtasks[%d]", p, j), st.ID, subtaskIDs)...)
		}
	}

	bookmarkIDs := make(map[string]bool)
	for i, b := range s.Bookmarks {
		p := fmt.Sprintf("%s.bookmarks[%d]", prefix, i)
		errs = append(errs, validateRef(p, b.ID, bookmarkIDs)...)
		if !validBookmarkTypes[b.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", p, b.Type))
		}
	}

	reflectionIDs := make(map[string]bool)
	for i, r := range s.Reflections {
		p := fmt.Sprintf("%s.reflections[%d]", prefix, i)
		errs = append(errs, validateRef(p, r.ID, reflectionIDs)...)
		if r.CreatedAt != "" && r.DaysAgo != nil {
			errs = append(errs, fmt.Errorf("%s: set created_at or days_ago, not both", p))
		}
		if r.DaysAgo != nil && *r.DaysAgo < 0 {
			errs = append(errs, fmt.Errorf("%s.days_ago: must not be negative", p))
		}
		errs = append(errs, validateOptionalDate(p+".created_at", optional(r.CreatedAt))...)
	}

	for i, m := range s.Meetings {
		p := fmt.Sprintf("%s.meetings[%d]", prefix, i)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", p))
		}
		if m.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration must be positive", p))
		}
		if m.ScheduledDate == "" {
			errs = append(errs, fmt.Errorf("%s.scheduled_date is required", p))
		}
		errs = append(errs, validateOptionalDate(p+".scheduled_date", optional(m.ScheduledDate))...)
		errs = append(errs, validateEnum(p+".status", m.Status, validMeetingStatuses)...)
		if m.Summary != nil {
			for j, a := range m.Summary.Actions {
				errs = append(errs, validateEnum(fmt.Sprintf("%s.summary.actions[%d].status", p, j), a.Status, validActionStatuses)...)
			}
		}
	}

	return errs
}

// validateRef rejects a repeated non-empty id within one list. Empty ids
// are generated at conversion.
func validateRef(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateEnum(field, value string, valid map[string]bool) []error {
	if value == "" || valid[value] {
		return nil
	}
	return []error{fmt.Errorf("%s: invalid value %q", field, value)}
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := parseDate(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date %q (expected RFC3339 or YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDate accepts RFC3339 timestamps and bare dates. A bare due date means
// the end of that day in UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24*time.Hour - time.Second), nil
}
