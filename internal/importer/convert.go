package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
)

// Convert transforms a validated roster into student bundles. Missing ids
// are generated, relative reflection dates resolve against now, and every
// record gets its defaults filled in.
func Convert(schema *RosterSchema, now time.Time) ([]*domain.StudentData, error) {
	now = now.UTC()
	out := make([]*domain.StudentData, 0, len(schema.Students))
	for i, s := range schema.Students {
		d, err := convertStudent(&s, now)
		if err != nil {
			return nil, fmt.Errorf("students[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func convertStudent(s *StudentImport, now time.Time) (*domain.StudentData, error) {
	d := &domain.StudentData{
		Student: domain.Student{
			ID:               idOrNew(s.ID),
			FirstName:        s.FirstName,
			LastName:         s.LastName,
			Grade:            s.Grade,
			Email:            s.Email,
			Location:         s.Location,
			AvatarURL:        s.AvatarURL,
			MissionStatement: s.MissionStatement,
			GPA:              s.GPA,
			SATScore:         s.SATScore,
			ACTScore:         s.ACTScore,
			ClassRank:        s.ClassRank,
			ReadinessScore:   s.ReadinessScore,
			OnTrackStatus:    domain.OnTrack,
		},
		Profile: domain.StudentProfile{
			Strengths:        []string{},
			TopDurableSkills: []domain.DurableSkill{},
		},
		ManualOverride: s.ManualOverride,
	}
	if s.OnTrackStatus != "" {
		d.Student.OnTrackStatus = domain.OnTrackStatus(s.OnTrackStatus)
	}

	if p := s.Profile; p != nil {
		d.Profile.CareerVision = p.CareerVision
		d.Profile.PersonalityType = p.PersonalityType
		d.Profile.ExperienceCount = p.ExperienceCount
		d.Profile.DurableSkillsSummary = p.DurableSkillsSummary
		d.Profile.Strengths = append(d.Profile.Strengths, p.Strengths...)
		for _, sk := range p.TopDurableSkills {
			d.Profile.TopDurableSkills = append(d.Profile.TopDurableSkills, domain.DurableSkill{Name: sk.Name, Level: sk.Level})
		}
	}

	for _, m := range s.Milestones {
		ms, err := convertMilestone(m)
		if err != nil {
			return nil, err
		}
		d.Milestones = append(d.Milestones, ms)
	}

	for _, f := range s.QualityFlags {
		flaggedAt := now
		if f.FlaggedAt != "" {
			t, err := parseDate(f.FlaggedAt)
			if err != nil {
				return nil, fmt.Errorf("quality flag %q: %w", f.MilestoneID, err)
			}
			flaggedAt = t
		}
		d.QualityFlags = append(d.QualityFlags, domain.QualityFlag{
			MilestoneID: f.MilestoneID,
			Reason:      f.Reason,
			FlaggedAt:   flaggedAt,
		})
	}

	for _, g := range s.Goals {
		goal := domain.SmartGoal{
			ID:          idOrNew(g.ID),
			Title:       g.Title,
			Description: g.Description,
			Status:      domain.GoalActive,
			Subtasks:    []domain.Subtask{},
		}
		if g.Status != "" {
			goal.Status = domain.GoalStatus(g.Status)
		}
		for _, st := range g.Subtasks {
			goal.Subtasks = append(goal.Subtasks, domain.Subtask{
				ID:        idOrNew(st.ID),
				Title:     st.Title,
				Completed: st.Completed,
			})
		}
		d.Goals = append(d.Goals, goal)
	}

	for _, b := range s.Bookmarks {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		d.Bookmarks = append(d.Bookmarks, domain.Bookmark{
			ID:             idOrNew(b.ID),
			Type:           domain.BookmarkType(b.Type),
			Title:          b.Title,
			Tags:           tags,
			IsTopPick:      b.TopPick,
			MedianSalary:   b.MedianSalary,
			EducationYears: b.EducationYears,
		})
	}

	for _, r := range s.Reflections {
		createdAt := now
		switch {
		case r.DaysAgo != nil:
			createdAt = now.AddDate(0, 0, -*r.DaysAgo)
		case r.CreatedAt != "":
			t, err := parseDate(r.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("reflection %q: %w", r.Title, err)
			}
			createdAt = t
		}
		d.Reflections = append(d.Reflections, domain.Reflection{
			ID:             idOrNew(r.ID),
			Title:          r.Title,
			LessonTitle:    r.LessonTitle,
			Content:        r.Content,
			CreatedAt:      createdAt,
			CurriculumUnit: r.CurriculumUnit,
		})
	}

	for _, m := range s.Meetings {
		mt, err := convertMeeting(d.Student.ID, m, now)
		if err != nil {
			return nil, err
		}
		d.Meetings = append(d.Meetings, mt)
	}

	return d, nil
}

func convertMilestone(m MilestoneImport) (domain.Milestone, error) {
	ms := domain.Milestone{
		ID:            idOrNew(m.ID),
		Title:         m.Title,
		Source:        domain.MilestoneSystemGenerated,
		Status:        domain.MilestoneNotDone,
		Progress:      m.Progress,
		ProgressLabel: m.ProgressLabel,
		Description:   m.Description,
	}
	if m.Source != "" {
		ms.Source = domain.MilestoneSource(m.Source)
	}
	if m.Status != "" {
		ms.Status = domain.MilestoneStatus(m.Status)
	}

	var err error
	if ms.DueDate, err = parseOptionalDate(m.DueDate); err != nil {
		return ms, fmt.Errorf("milestone %q due_date: %w", m.Title, err)
	}
	if ms.CompletedAt, err = parseOptionalDate(m.CompletedAt); err != nil {
		return ms, fmt.Errorf("milestone %q completed_at: %w", m.Title, err)
	}
	return ms, nil
}

func convertMeeting(studentID string, m MeetingImport, now time.Time) (domain.Meeting, error) {
	scheduled, err := parseDate(m.ScheduledDate)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("meeting %q scheduled_date: %w", m.Title, err)
	}
	mt := domain.Meeting{
		ID:            idOrNew(m.ID),
		StudentID:     studentID,
		Title:         m.Title,
		ScheduledDate: scheduled,
		Duration:      m.Duration,
		Status:        domain.MeetingScheduled,
		Agenda:        []domain.AgendaItem{},
		CreatedAt:     now.Truncate(time.Second),
	}
	if m.Status != "" {
		mt.Status = domain.MeetingStatus(m.Status)
	}
	if sum := m.Summary; sum != nil {
		mt.Summary = &domain.MeetingSummary{
			Overview:           sum.Overview,
			KeyPoints:          append([]string{}, sum.KeyPoints...),
			RecommendedActions: []domain.RecommendedAction{},
		}
		for _, a := range sum.Actions {
			status := domain.ActionPending
			if a.Status != "" {
				status = domain.ActionStatus(a.Status)
			}
			mt.Summary.RecommendedActions = append(mt.Summary.RecommendedActions, domain.RecommendedAction{
				ID:     idOrNew(a.ID),
				Title:  a.Title,
				Status: status,
			})
		}
	}
	return mt, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
