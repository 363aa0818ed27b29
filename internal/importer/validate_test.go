package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validMinimalRoster() *RosterSchema {
	return &RosterSchema{
		Students: []StudentImport{
			{
				ID:        "s1",
				FirstName: "Test",
				LastName:  "Student",
				Grade:     11,
				GPA:       3.2,
				Milestones: []MilestoneImport{
					{ID: "m1", Title: "Resume", DueDate: ptrStr("2025-03-01")},
				},
			},
		},
	}
}

func hasError(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidateRoster_ValidMinimal(t *testing.T) {
	errs := ValidateRoster(validMinimalRoster())
	assert.Empty(t, errs)
}

func TestValidateRoster_ValidFull(t *testing.T) {
	s := validMinimalRoster()
	st := &s.Students[0]
	st.OnTrackStatus = "off_track"
	st.ReadinessScore = 55
	st.QualityFlags = []FlagImport{{MilestoneID: "m1", Reason: "thin resume", FlaggedAt: "2025-01-02T10:00:00Z"}}
	st.Goals = []GoalImport{{ID: "g1", Title: "Essays", Status: "completed", Subtasks: []SubtaskImport{{ID: "st1", Title: "Outline"}}}}
	st.Bookmarks = []BookmarkImport{{ID: "b1", Type: "career", Title: "Nurse", TopPick: true, MedianSalary: ptrInt(81220)}}
	st.Reflections = []ReflectionImport{{Title: "Week 1", DaysAgo: ptrInt(3)}, {Title: "Week 2", CreatedAt: "2024-12-01"}}
	st.Meetings = []MeetingImport{{
		Title: "Check-in", ScheduledDate: "2024-12-20T15:00:00Z", Duration: 30, Status: "completed",
		Summary: &SummaryImport{Overview: "ok", Actions: []ActionImport{{Title: "Draft", Status: "pending"}}},
	}}

	errs := ValidateRoster(s)
	assert.Empty(t, errs)
}

func TestValidateRoster_EmptyRoster(t *testing.T) {
	errs := ValidateRoster(&RosterSchema{})
	assert.True(t, hasError(errs, "at least one student"))
}

func TestValidateRoster_StudentFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *StudentImport)
		wantMsg string
	}{
		{"missing first_name", func(s *StudentImport) { s.FirstName = "" }, "first_name is required"},
		{"missing last_name", func(s *StudentImport) { s.LastName = "" }, "last_name is required"},
		{"grade below range", func(s *StudentImport) { s.Grade = 8 }, "grade: 8 is outside 9-12"},
		{"grade above range", func(s *StudentImport) { s.Grade = 13 }, "grade: 13 is outside 9-12"},
		{"negative gpa", func(s *StudentImport) { s.GPA = -0.1 }, "gpa"},
		{"gpa above scale", func(s *StudentImport) { s.GPA = 5.1 }, "gpa"},
		{"readiness above 100", func(s *StudentImport) { s.ReadinessScore = 101 }, "readiness_score"},
		{"unknown standing", func(s *StudentImport) { s.OnTrackStatus = "sideways" }, "on_track_status: invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalRoster()
			tc.mutate(&s.Students[0])
			errs := ValidateRoster(s)
			assert.True(t, hasError(errs, tc.wantMsg), "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateRoster_Milestones(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *MilestoneImport)
		wantMsg string
	}{
		{"missing title", func(m *MilestoneImport) { m.Title = "" }, "title is required"},
		{"progress above 100", func(m *MilestoneImport) { m.Progress = 120 }, "progress: 120"},
		{"bad source", func(m *MilestoneImport) { m.Source = "teacher" }, "source: invalid value"},
		{"bad status", func(m *MilestoneImport) { m.Status = "half" }, "status: invalid value"},
		{"bad due_date", func(m *MilestoneImport) { m.DueDate = ptrStr("next week") }, "invalid date"},
		{"bad completed_at", func(m *MilestoneImport) { m.CompletedAt = ptrStr("2025/01/01") }, "invalid date"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalRoster()
			tc.mutate(&s.Students[0].Milestones[0])
			errs := ValidateRoster(s)
			assert.True(t, hasError(errs, tc.wantMsg), "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateRoster_DuplicateIDs(t *testing.T) {
	s := validMinimalRoster()
	s.Students = append(s.Students, s.Students[0])
	s.Students[0].Milestones = append(s.Students[0].Milestones, MilestoneImport{ID: "m1", Title: "Again"})

	errs := ValidateRoster(s)
	assert.True(t, hasError(errs, `students[1].id: duplicate id "s1"`))
	assert.True(t, hasError(errs, `students[0].milestones[1].id: duplicate id "m1"`))
}

func TestValidateRoster_DuplicateIDsAcrossStudentsAllowed(t *testing.T) {
	s := validMinimalRoster()
	other := s.Students[0]
	other.ID = "s2"
	s.Students = append(s.Students, other)

	errs := ValidateRoster(s)
	assert.Empty(t, errs, "child ids only need to be unique per student")
}

func TestValidateRoster_UnknownFlagMilestone(t *testing.T) {
	s := validMinimalRoster()
	s.Students[0].QualityFlags = []FlagImport{{MilestoneID: "nope"}}

	errs := ValidateRoster(s)
	assert.True(t, hasError(errs, `unknown milestone "nope"`))
}

func TestValidateRoster_Reflections(t *testing.T) {
	s := validMinimalRoster()
	s.Students[0].Reflections = []ReflectionImport{
		{Title: "both", CreatedAt: "2025-01-01", DaysAgo: ptrInt(2)},
		{Title: "future", DaysAgo: ptrInt(-1)},
	}

	errs := ValidateRoster(s)
	assert.True(t, hasError(errs, "set created_at or days_ago, not both"))
	assert.True(t, hasError(errs, "days_ago: must not be negative"))
}

func TestValidateRoster_Meetings(t *testing.T) {
	s := validMinimalRoster()
	s.Students[0].Meetings = []MeetingImport{
		{Title: "", ScheduledDate: "", Duration: 0, Status: "maybe",
			Summary: &SummaryImport{Actions: []ActionImport{{Title: "x", Status: "later"}}}},
	}

	errs := ValidateRoster(s)
	assert.True(t, hasError(errs, "meetings[0].title is required"))
	assert.True(t, hasError(errs, "meetings[0].duration must be positive"))
	assert.True(t, hasError(errs, "meetings[0].scheduled_date is required"))
	assert.True(t, hasError(errs, "meetings[0].status: invalid value"))
	assert.True(t, hasError(errs, "actions[0].status: invalid value"))
}

func TestValidateRoster_CollectsAllErrors(t *testing.T) {
	s := validMinimalRoster()
	s.Students[0].FirstName = ""
	s.Students[0].Grade = 4
	s.Students[0].Bookmarks = []BookmarkImport{{Type: "hobby", Title: "x"}}

	errs := ValidateRoster(s)
	assert.Len(t, errs, 3)
}
