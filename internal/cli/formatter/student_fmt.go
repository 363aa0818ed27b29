package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/ontrack"
)

// StudentRow is one line of the roster: the student and their evaluated standing.
type StudentRow struct {
	Student domain.Student
	Report  ontrack.Report
}

// FormatStudentList renders the roster table.
func FormatStudentList(rows []StudentRow) string {
	if len(rows) == 0 {
		return Dim("No students. Run `counsel seed` to load the demo roster.") + "\n"
	}

	headers := []string{"ID", "NAME", "GRADE", "GPA", "STANDING", "MILESTONES"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		standing := StandingIndicator(r.Report.Status)
		if r.Report.Stale() {
			standing += StyleYellow.Render(" *")
		}
		data = append(data, []string{
			r.Student.ID,
			Bold(r.Student.FullName()),
			fmt.Sprintf("%d", r.Student.Grade),
			fmt.Sprintf("%.2f", r.Student.GPA),
			standing,
			fmt.Sprintf("%d/%d", r.Report.Completion.Completed, r.Report.Completion.Total),
		})
	}

	out := RenderTable(headers, data)
	for _, r := range rows {
		if r.Report.Stale() {
			out += Dim("* stored standing differs from the current evaluation") + "\n"
			break
		}
	}
	return out
}

// FormatOnTrackReport renders a student's standing with its reasons.
func FormatOnTrackReport(s domain.Student, r ontrack.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(s.FullName()), Dim(fmt.Sprintf("Grade %d · GPA %.2f", s.Grade, s.GPA)))
	fmt.Fprintf(&b, "Standing:   %s\n", StandingIndicator(r.Status))
	fmt.Fprintf(&b, "Milestones: %s %s\n",
		RenderProgress(r.Completion.Percentage, 20),
		Dim(fmt.Sprintf("(%d of %d done)", r.Completion.Completed, r.Completion.Total)))

	if len(r.Reasons) > 0 {
		b.WriteString("\n" + Header("Reasons") + "\n")
		for _, reason := range r.Reasons {
			b.WriteString(StyleRed.Render("  ✖ ") + reason + "\n")
		}
	}
	if r.Stale() {
		fmt.Fprintf(&b, "\n%s stored standing is %s\n", StyleYellow.Render("!"), string(r.Stored))
	}
	return RenderBox("On-track", strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatMilestones lists milestones with due dates relative to now.
func FormatMilestones(milestones []domain.Milestone, now time.Time) string {
	if len(milestones) == 0 {
		return Dim("No milestones.") + "\n"
	}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		due := Dim("--")
		if m.DueDate != nil {
			due = DueDateStyled(*m.DueDate, now)
			if m.Status == domain.MilestoneDone {
				due = Dim(RelativeDateFrom(*m.DueDate, now))
			}
		}
		status := StyleBlue.Render("○ open")
		if m.Status == domain.MilestoneDone {
			status = StyleDim.Render("✔ done")
		} else if m.IsOverdue(now) {
			status = StyleRed.Render("● overdue")
		}
		rows = append(rows, []string{m.Title, status, fmt.Sprintf("%d%%", m.Progress), due})
	}
	return RenderTable([]string{"MILESTONE", "STATUS", "PROGRESS", "DUE"}, rows)
}
