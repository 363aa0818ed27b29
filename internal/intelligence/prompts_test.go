package intelligence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/testutil"
)

func TestBuildTopicPrompt_StudentContext(t *testing.T) {
	p := BuildTopicPrompt(counselingStudent())

	assert.Contains(t, p, "**Student:** Jessica Santiago")
	assert.Contains(t, p, "**GPA:** 3.8")
	assert.Contains(t, p, "**On-Track Status:** on_track")
	assert.Contains(t, p, "**SAT Score:** 1340")
	assert.Contains(t, p, "**Durable Skills:** Communication (Advanced)")
	assert.Contains(t, p, "**Career Vision:** Become a pediatric nurse")
	assert.Contains(t, p, "- Submit FAFSA (not_done, 33% complete, due: 2025-01-15T23:59:59Z)")
	assert.Contains(t, p, "- Finish college essays: 1/4 subtasks complete")
	assert.Contains(t, p, "- Registered Nurse (career, TOP PICK)")
	assert.Contains(t, p, `Last meeting "Fall check-in" on 12/28/2024:`)
	assert.Contains(t, p, "- Pending actions: Draft personal statement")
	assert.Contains(t, p, "```json")
}

func TestBuildTopicPrompt_EmptyStudentUsesDefaults(t *testing.T) {
	d := testutil.NewTestStudentData("Alex", "Rivera", testutil.WithGrade(9), testutil.WithGPA(0))
	p := BuildTopicPrompt(*d)

	assert.Contains(t, p, "**GPA:** 0")
	assert.Contains(t, p, "**SAT Score:** Not taken")
	assert.Contains(t, p, "**Durable Skills:** Not assessed")
	assert.Contains(t, p, "**Strengths:** Not specified")
	assert.Contains(t, p, "All milestones complete")
	assert.Contains(t, p, "No active goals")
	assert.Contains(t, p, "No bookmarks")
	assert.Contains(t, p, "No recent reflections")
	assert.Contains(t, p, "No previous meeting data available.")
}

func TestBuildTopicPrompt_CapsBookmarksAndReflections(t *testing.T) {
	var opts []testutil.StudentOption
	for i := 1; i <= 7; i++ {
		opts = append(opts,
			testutil.WithBookmark(domain.BookmarkProgram, fmt.Sprintf("Program %d", i), false),
			testutil.WithReflection(fmt.Sprintf("Reflection %d", i), "Lesson", time.Date(2024, 11, i, 0, 0, 0, 0, time.UTC)),
		)
	}
	p := BuildTopicPrompt(*testutil.NewTestStudentData("Dana", "Kim", opts...))

	assert.Contains(t, p, "- Program 5 (program)")
	assert.NotContains(t, p, "Program 6")
	assert.Contains(t, p, `- "Reflection 3" from lesson "Lesson"`)
	assert.NotContains(t, p, "Reflection 4")
}

func TestBuildAgendaTextPrompt_Format(t *testing.T) {
	meeting := time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC)
	p := BuildAgendaTextPrompt(counselingStudent(), &meeting)

	assert.Contains(t, p, "Meeting with Jessica Santiago\nGrade 12 | Tuesday, January 14, 2025\n")
	assert.Contains(t, p, "PRIORITY ITEMS")
	assert.Contains(t, p, "DISCUSSION TOPICS")
	assert.Contains(t, p, "- Submit FAFSA (33% complete, due: 2025-01-15T23:59:59Z)")
	assert.NotContains(t, p, "Key points:")
	assert.NotContains(t, p, "SAT Score")

	p = BuildAgendaTextPrompt(counselingStudent(), nil)
	assert.Contains(t, p, "Grade 12 | Upcoming")
}
