package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RosterSchema is the top-level structure of a roster file. JSON rosters
// parse too since the decoder is YAML.
type RosterSchema struct {
	Students []StudentImport `yaml:"students"`
}

// StudentImport defines one student bundle in the roster file.
type StudentImport struct {
	ID               string             `yaml:"id"`
	FirstName        string             `yaml:"first_name"`
	LastName         string             `yaml:"last_name"`
	Grade            int                `yaml:"grade"`
	Email            string             `yaml:"email,omitempty"`
	Location         string             `yaml:"location,omitempty"`
	AvatarURL        string             `yaml:"avatar_url,omitempty"`
	MissionStatement string             `yaml:"mission_statement,omitempty"`
	GPA              float64            `yaml:"gpa"`
	SATScore         *int               `yaml:"sat_score,omitempty"`
	ACTScore         *int               `yaml:"act_score,omitempty"`
	ClassRank        string             `yaml:"class_rank,omitempty"`
	ReadinessScore   int                `yaml:"readiness_score,omitempty"`
	OnTrackStatus    string             `yaml:"on_track_status,omitempty"`
	ManualOverride   bool               `yaml:"manual_override,omitempty"`
	Profile          *ProfileImport     `yaml:"profile,omitempty"`
	Milestones       []MilestoneImport  `yaml:"milestones,omitempty"`
	QualityFlags     []FlagImport       `yaml:"quality_flags,omitempty"`
	Goals            []GoalImport       `yaml:"goals,omitempty"`
	Bookmarks        []BookmarkImport   `yaml:"bookmarks,omitempty"`
	Reflections      []ReflectionImport `yaml:"reflections,omitempty"`
	Meetings         []MeetingImport    `yaml:"meetings,omitempty"`
}

type ProfileImport struct {
	Strengths            []string      `yaml:"strengths,omitempty"`
	CareerVision         string        `yaml:"career_vision,omitempty"`
	PersonalityType      string        `yaml:"personality_type,omitempty"`
	ExperienceCount      int           `yaml:"experience_count,omitempty"`
	DurableSkillsSummary string        `yaml:"durable_skills_summary,omitempty"`
	TopDurableSkills     []SkillImport `yaml:"top_durable_skills,omitempty"`
}

type SkillImport struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// MilestoneImport defines a milestone. Dates are RFC3339 or YYYY-MM-DD.
type MilestoneImport struct {
	ID            string  `yaml:"id"`
	Title         string  `yaml:"title"`
	Source        string  `yaml:"source,omitempty"`
	Status        string  `yaml:"status,omitempty"`
	Progress      int     `yaml:"progress,omitempty"`
	ProgressLabel string  `yaml:"progress_label,omitempty"`
	Description   string  `yaml:"description,omitempty"`
	DueDate       *string `yaml:"due_date,omitempty"`
	CompletedAt   *string `yaml:"completed_at,omitempty"`
}

type FlagImport struct {
	MilestoneID string `yaml:"milestone_id"`
	Reason      string `yaml:"reason,omitempty"`
	FlaggedAt   string `yaml:"flagged_at,omitempty"`
}

type GoalImport struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description,omitempty"`
	Status      string          `yaml:"status,omitempty"`
	Subtasks    []SubtaskImport `yaml:"subtasks,omitempty"`
}

type SubtaskImport struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed,omitempty"`
}

type BookmarkImport struct {
	ID             string   `yaml:"id"`
	Type           string   `yaml:"type"`
	Title          string   `yaml:"title"`
	Tags           []string `yaml:"tags,omitempty"`
	TopPick        bool     `yaml:"top_pick,omitempty"`
	MedianSalary   *int     `yaml:"median_salary,omitempty"`
	EducationYears string   `yaml:"education_years,omitempty"`
}

// ReflectionImport sets either CreatedAt or DaysAgo. DaysAgo is resolved
// against the import time, which keeps demo data recent.
type ReflectionImport struct {
	ID             string `yaml:"id"`
	Title          string `yaml:"title"`
	LessonTitle    string `yaml:"lesson_title,omitempty"`
	Content        string `yaml:"content,omitempty"`
	CreatedAt      string `yaml:"created_at,omitempty"`
	DaysAgo        *int   `yaml:"days_ago,omitempty"`
	CurriculumUnit string `yaml:"curriculum_unit,omitempty"`
}

type MeetingImport struct {
	ID            string         `yaml:"id"`
	Title         string         `yaml:"title"`
	ScheduledDate string         `yaml:"scheduled_date"`
	Duration      int            `yaml:"duration"`
	Status        string         `yaml:"status,omitempty"`
	Summary       *SummaryImport `yaml:"summary,omitempty"`
}

type SummaryImport struct {
	Overview  string         `yaml:"overview"`
	KeyPoints []string       `yaml:"key_points,omitempty"`
	Actions   []ActionImport `yaml:"actions,omitempty"`
}

type ActionImport struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Status string `yaml:"status,omitempty"`
}

// ParseRoster decodes a roster document. Unknown keys are rejected.
func ParseRoster(data []byte) (*RosterSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema RosterSchema
	if err := dec.Decode(&schema); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}
	return &schema, nil
}

// LoadRoster reads and parses a roster file.
func LoadRoster(path string) (*RosterSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoster(data)
}
