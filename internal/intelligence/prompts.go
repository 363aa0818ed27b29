package intelligence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
)

// gradeLevelGuidance is the counselor playbook the model grounds its topics in.
const gradeLevelGuidance = `
## 9th Grade
**Focus:** Discovery | **Exposure:** Awareness

**Milestones to Check:**
- Personality Quiz, Life Map, Who Am I? Statement
- Portfolio: Strengths, Interests, Values
- Mission Statement + Action Plan

**Conversation Topics:**
- Relationship building & counselor role
- Personality quiz results → connection to interests
- Values → connection to Mission Statement
- Course selection alignment with emerging interests
- Extracurricular engagement (depth over breadth)

**Key Decision Point:** Interest-course misalignment

---

## 10th Grade
**Focus:** Exploration | **Exposure:** Engagement

**Milestones to Check:**
- Durable Skills Quiz
- Career Vision, Career Evaluation Matrix
- 3 Careers bookmarked + added to Matrix
- Impact Project (Proposal, Presentation, Careers)
- Career Pathways Analysis + Presentation
- 1 Career Interview or Job Shadow

**Conversation Topics:**
- Career exploration progress → which Global Pressing Challenges resonate?
- Career Matrix review → are choices grounded in interests/values?
- Impact Project reflection → what did you learn about yourself?
- Alignment with emerging career pathways
- Job shadow/interview debrief (if complete)

**Key Decision Point:** Career interests misaligned with current course trajectory

---

## 11th Grade
**Focus:** Launch | **Exposure:** Experience

**Milestones to Check:**
- Updated Portfolio (Strengths, Interests, Work Experience)
- Polished Resume
- Balanced List (8 schools/programs)
- Program Comparison Matrix with rationale
- Application-Ready Personal Statement

**Conversation Topics:**
- Balanced list review → reach/match/safety calibration using ROI data
- Program Comparison Matrix → is rationale grounded in career goals + financial reality?
- Personal statement progress → authentic story emerging?
- Resume review → gaps to address before senior year?
- Financial reality check → net price calculator results, family expectations

**Key Decision Points:**
- Financial reality conflicts with college preferences
- Options overwhelm (can't narrow list)
- Family-student disagreement on pathway

---

## 12th Grade
**Focus:** Launch | **Exposure:** Experience

**Milestones to Check:**
- On-Track Review (transcript, graduation requirements)
- FAFSA submitted
- Scholarship applications submitted
- CSS Profile / State Financial Aid (if applicable)
- Applications submitted (college or trade/apprenticeship)
- Finalized Balanced List + Personal Statement
- Postsecondary Decision Defense
- Durable Skills Quiz, Workplace Ready Resume, LinkedIn Profile

**Conversation Topics:**
- Application status check → what's submitted, what's pending?
- Financial aid progress → FAFSA complete? Scholarships submitted?
- Decision support → comparing offers using ROI data
- Postsecondary Decision Defense prep → can student articulate rationale?
- Transition readiness → next steps after commitment

**Key Decision Points:**
- Financial aid package comparison
- Student goes silent on deadlines
- Family-student disagreement on final decision
`

const topicInstructions = `## Instructions

Based on the grade-level guidance above and this student's specific data, recommend 4-6 topics for the upcoming counselor meeting. For each topic:

1. Consider the student's grade level and what milestones/conversations are most relevant
2. Identify any red flags or key decision points that need attention
3. Connect recommendations to specific student data (milestones, goals, bookmarks, etc.)
4. Prioritize topics that address immediate needs or upcoming deadlines

Return a JSON array of topic recommendations with this exact structure:
` + "```json" + `
[
  {
    "id": "unique-id",
    "topic": "Brief topic title",
    "description": "1-2 sentence description of what to discuss",
    "category": "deadline|milestone|goal|reflection|bookmark|grade_level|follow_up",
    "priority": "high|medium|low",
    "reason": "Why this topic is recommended based on student data",
    "sourceReference": {
      "type": "milestone|task|reflection|bookmark|grade_level|goal|meeting",
      "id": "optional-id-if-applicable",
      "title": "optional-title"
    }
  }
]
` + "```" + `

Categories explained:
- deadline: Time-sensitive items with upcoming due dates
- milestone: Progress on required milestones for the grade level
- goal: Active SMART goals the student is working on
- reflection: Follow-up on recent reflections or self-discovery
- bookmark: Career/program exploration based on bookmarked items
- grade_level: Standard topics for this grade level from the guidance
- follow_up: Items from previous meetings that need follow-up

Return ONLY the JSON array, no other text.`

const agendaTextRequirements = `Requirements:
1. Include 2-3 priority items based on urgent deadlines, incomplete milestones, or key decision points for this grade level
2. Include 2-3 discussion topics for career exploration, goals, or grade-level milestones
3. Each item should have specific context from the student's data
4. Keep descriptions brief but personalized
5. Output ONLY the agenda text, no additional commentary or markdown formatting`

const (
	maxPromptBookmarks   = 5
	maxPromptReflections = 3
)

// BuildTopicPrompt renders the topic recommendation prompt for one student.
func BuildTopicPrompt(data domain.StudentData) string {
	s := data.Student
	var b strings.Builder

	b.WriteString("You are a high school counselor assistant helping prepare for a student meeting. ")
	b.WriteString("Generate personalized topic recommendations based on the student's grade level, progress, and data.\n\n")
	b.WriteString(gradeLevelGuidance)
	b.WriteString("\n---\n\n## Student Context\n\n")

	fmt.Fprintf(&b, "**Student:** %s\n", s.FullName())
	fmt.Fprintf(&b, "**Grade:** %d\n", s.Grade)
	fmt.Fprintf(&b, "**GPA:** %s\n", formatGPA(s.GPA))
	fmt.Fprintf(&b, "**On-Track Status:** %s\n", s.OnTrackStatus)
	fmt.Fprintf(&b, "**SAT Score:** %s\n", scoreOrNotTaken(s.SATScore))
	fmt.Fprintf(&b, "**ACT Score:** %s\n", scoreOrNotTaken(s.ACTScore))

	p := data.Profile
	skills := make([]string, len(p.TopDurableSkills))
	for i, sk := range p.TopDurableSkills {
		skills[i] = fmt.Sprintf("%s (%s)", sk.Name, sk.Level)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Durable Skills:** %s\n", orDefault(strings.Join(skills, ", "), "Not assessed"))
	fmt.Fprintf(&b, "**Personality Type:** %s\n", orDefault(p.PersonalityType, "Not assessed"))
	fmt.Fprintf(&b, "**Career Vision:** %s\n", orDefault(p.CareerVision, "Not specified"))
	fmt.Fprintf(&b, "**Work Experience:** %d experiences logged\n", p.ExperienceCount)
	fmt.Fprintf(&b, "**Strengths:** %s\n", orDefault(strings.Join(p.Strengths, ", "), "Not specified"))

	writeStudentSections(&b, data, true)

	b.WriteString("\n**Previous Meeting Context:**\n")
	b.WriteString(lastMeetingContext(data, true))
	b.WriteString("\n\n---\n\n")
	b.WriteString(topicInstructions)

	return b.String()
}

// BuildAgendaTextPrompt renders the plain-text agenda prompt. A nil
// meetingDate renders as "Upcoming".
func BuildAgendaTextPrompt(data domain.StudentData, meetingDate *time.Time) string {
	s := data.Student
	var b strings.Builder

	b.WriteString("You are a high school counselor preparing a meeting agenda for a student. ")
	b.WriteString("Generate a clear, readable text agenda that can be edited by the counselor.\n\n")
	b.WriteString(gradeLevelGuidance)
	b.WriteString("\n---\n\n## Student Context\n\n")

	fmt.Fprintf(&b, "**Student:** %s\n", s.FullName())
	fmt.Fprintf(&b, "**Grade:** %d\n", s.Grade)
	fmt.Fprintf(&b, "**GPA:** %s\n", formatGPA(s.GPA))
	fmt.Fprintf(&b, "**On-Track Status:** %s\n", s.OnTrackStatus)

	p := data.Profile
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Career Vision:** %s\n", orDefault(p.CareerVision, "Not specified"))
	fmt.Fprintf(&b, "**Strengths:** %s\n", orDefault(strings.Join(p.Strengths, ", "), "Not specified"))
	fmt.Fprintf(&b, "**Work Experience:** %d experiences logged\n", p.ExperienceCount)

	writeStudentSections(&b, data, false)

	b.WriteString("\n**Previous Meeting Context:**\n")
	b.WriteString(lastMeetingContext(data, false))
	b.WriteString("\n\n---\n\n## Instructions\n\n")
	b.WriteString("Generate a meeting agenda as plain text that follows this format exactly:\n\n")

	formattedDate := "Upcoming"
	if meetingDate != nil {
		formattedDate = meetingDate.Format("Monday, January 2, 2006")
	}
	fmt.Fprintf(&b, "Meeting with %s\n", s.FullName())
	fmt.Fprintf(&b, "Grade %d | %s\n\n", s.Grade, formattedDate)
	b.WriteString("PRIORITY ITEMS\n- [Topic title]\n  [1-2 sentence context based on student data]\n\n")
	b.WriteString("DISCUSSION TOPICS\n- [Topic title]\n  [1-2 sentence context based on student data]\n\n")
	b.WriteString("NOTES\n[Leave blank for counselor notes]\n\n")
	b.WriteString(agendaTextRequirements)

	return b.String()
}

// writeStudentSections renders milestones, goals, bookmarks and reflections.
// The topic prompt also lists each milestone's status.
func writeStudentSections(b *strings.Builder, data domain.StudentData, withStatus bool) {
	var milestones []string
	for _, m := range data.Milestones {
		if m.Status == domain.MilestoneDone {
			continue
		}
		detail := fmt.Sprintf("%d%% complete", m.Progress)
		if withStatus {
			detail = fmt.Sprintf("%s, %s", m.Status, detail)
		}
		if m.DueDate != nil {
			detail += ", due: " + m.DueDate.UTC().Format(time.RFC3339)
		}
		milestones = append(milestones, fmt.Sprintf("- %s (%s)", m.Title, detail))
	}

	var goals []string
	for _, g := range data.ActiveGoals() {
		goals = append(goals, fmt.Sprintf("- %s: %d/%d subtasks complete", g.Title, g.CompletedSubtasks(), len(g.Subtasks)))
	}

	var bookmarks []string
	for i, bm := range data.Bookmarks {
		if i == maxPromptBookmarks {
			break
		}
		kind := string(bm.Type)
		if bm.IsTopPick {
			kind += ", TOP PICK"
		}
		bookmarks = append(bookmarks, fmt.Sprintf("- %s (%s)", bm.Title, kind))
	}

	var reflections []string
	for i, r := range data.Reflections {
		if i == maxPromptReflections {
			break
		}
		reflections = append(reflections, fmt.Sprintf("- %q from lesson %q", r.Title, r.LessonTitle))
	}

	writeSection(b, "Incomplete Milestones", milestones, "All milestones complete")
	writeSection(b, "Active Goals", goals, "No active goals")
	writeSection(b, "Bookmarked Careers/Programs", bookmarks, "No bookmarks")
	writeSection(b, "Recent Reflections", reflections, "No recent reflections")
}

func writeSection(b *strings.Builder, title string, lines []string, empty string) {
	fmt.Fprintf(b, "\n**%s:**\n", title)
	if len(lines) == 0 {
		b.WriteString(empty + "\n")
		return
	}
	b.WriteString(strings.Join(lines, "\n") + "\n")
}

func lastMeetingContext(data domain.StudentData, withKeyPoints bool) string {
	last := data.LastCompletedMeeting()
	if last == nil || last.Summary == nil {
		return "No previous meeting data available."
	}

	var pending []string
	for _, a := range last.Summary.PendingActions() {
		pending = append(pending, a.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last meeting %q on %s:\n", last.Title, last.ScheduledDate.Format("1/2/2006"))
	fmt.Fprintf(&b, "- Summary: %s\n", last.Summary.Overview)
	if withKeyPoints {
		fmt.Fprintf(&b, "- Key points: %s\n", orDefault(strings.Join(last.Summary.KeyPoints, ", "), "None"))
	}
	fmt.Fprintf(&b, "- Pending actions: %s", orDefault(strings.Join(pending, ", "), "None"))
	return b.String()
}

func formatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'f', -1, 64)
}

func scoreOrNotTaken(score *int) string {
	if score == nil || *score == 0 {
		return "Not taken"
	}
	return strconv.Itoa(*score)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
