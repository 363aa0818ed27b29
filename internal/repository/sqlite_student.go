package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/counsel/internal/db"
	"github.com/alexanderramin/counsel/internal/domain"
)

// SQLiteStudentRepo implements StudentRepo using a SQLite database.
type SQLiteStudentRepo struct {
	db db.DBTX
}

// NewSQLiteStudentRepo creates a new SQLiteStudentRepo.
func NewSQLiteStudentRepo(conn db.DBTX) *SQLiteStudentRepo {
	return &SQLiteStudentRepo{db: conn}
}

const studentColumns = `id, first_name, last_name, grade, email, location, avatar_url,
	mission_statement, gpa, sat_score, act_score, class_rank, readiness_score,
	on_track_status, manual_override`

func (r *SQLiteStudentRepo) Get(ctx context.Context, id string) (*domain.StudentData, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	var d domain.StudentData
	var override int
	if err := scanStudent(r.db.QueryRowContext(ctx, query, id), &d.Student, &override); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	d.ManualOverride = intToBool(override)

	var err error
	if d.Profile, err = r.loadProfile(ctx, id); err != nil {
		return nil, err
	}
	if d.Milestones, err = r.loadMilestones(ctx, id); err != nil {
		return nil, err
	}
	if d.QualityFlags, err = r.loadQualityFlags(ctx, id); err != nil {
		return nil, err
	}
	if d.Goals, err = r.loadGoals(ctx, id); err != nil {
		return nil, err
	}
	if d.Bookmarks, err = r.loadBookmarks(ctx, id); err != nil {
		return nil, err
	}
	if d.Reflections, err = r.loadReflections(ctx, id); err != nil {
		return nil, err
	}

	meetings, err := listMeetings(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	d.Meetings = make([]domain.Meeting, 0, len(meetings))
	for _, m := range meetings {
		d.Meetings = append(d.Meetings, *m)
	}
	return &d, nil
}

func (r *SQLiteStudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		var s domain.Student
		var override int
		if err := scanStudent(rows, &s, &override); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return students, nil
}

func scanStudent(row rowScanner, s *domain.Student, override *int) error {
	var sat, act sql.NullInt64
	var status string
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Grade, &s.Email, &s.Location, &s.AvatarURL,
		&s.MissionStatement, &s.GPA, &sat, &act, &s.ClassRank, &s.ReadinessScore,
		&status, override,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("scanning student: %w", err)
	}
	s.SATScore = nullableInt(sat)
	s.ACTScore = nullableInt(act)
	s.OnTrackStatus = domain.OnTrackStatus(status)
	return nil
}

// Save upserts the student row and replaces profile, milestones, flags,
// goals, bookmarks and reflections. Meetings in d are upserted by id; other
// stored meetings are left alone. Callers that need atomicity run Save on a
// transaction-scoped repo.
func (r *SQLiteStudentRepo) Save(ctx context.Context, d *domain.StudentData) error {
	s := d.Student
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO students (`+studentColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name, last_name = excluded.last_name,
			grade = excluded.grade, email = excluded.email, location = excluded.location,
			avatar_url = excluded.avatar_url, mission_statement = excluded.mission_statement,
			gpa = excluded.gpa, sat_score = excluded.sat_score, act_score = excluded.act_score,
			class_rank = excluded.class_rank, readiness_score = excluded.readiness_score,
			on_track_status = excluded.on_track_status, manual_override = excluded.manual_override,
			updated_at = excluded.updated_at`,
		s.ID, s.FirstName, s.LastName, s.Grade, s.Email, s.Location, s.AvatarURL,
		s.MissionStatement, s.GPA, nullableIntToValue(s.SATScore), nullableIntToValue(s.ACTScore),
		s.ClassRank, s.ReadinessScore, string(s.OnTrackStatus), boolToInt(d.ManualOverride),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting student: %w", err)
	}

	for _, table := range []string{"student_profiles", "milestones", "quality_flags", "goals", "bookmarks", "reflections"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE student_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := r.insertProfile(ctx, s.ID, d.Profile); err != nil {
		return err
	}
	for i, m := range d.Milestones {
		_, err := r.db.ExecContext(ctx, `INSERT INTO milestones (student_id, id, title, source, status,
			progress, progress_label, description, due_date, completed_at, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, m.ID, m.Title, string(m.Source), string(m.Status), m.Progress, m.ProgressLabel,
			m.Description, nullableTimeToString(m.DueDate, time.RFC3339),
			nullableTimeToString(m.CompletedAt, time.RFC3339), i,
		)
		if err != nil {
			return fmt.Errorf("inserting milestone %s: %w", m.ID, err)
		}
	}
	for _, f := range d.QualityFlags {
		_, err := r.db.ExecContext(ctx, `INSERT INTO quality_flags (student_id, milestone_id, reason, flagged_at)
			VALUES (?, ?, ?, ?)`,
			s.ID, f.MilestoneID, f.Reason, f.FlaggedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting quality flag: %w", err)
		}
	}
	for i, g := range d.Goals {
		if err := r.insertGoal(ctx, s.ID, g, i); err != nil {
			return err
		}
	}
	for i, b := range d.Bookmarks {
		tags, err := toJSON(b.Tags)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `INSERT INTO bookmarks (student_id, id, type, title, tags_json,
			is_top_pick, median_salary, education_years, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, b.ID, string(b.Type), b.Title, tags, boolToInt(b.IsTopPick),
			nullableIntToValue(b.MedianSalary), b.EducationYears, i,
		)
		if err != nil {
			return fmt.Errorf("inserting bookmark %s: %w", b.ID, err)
		}
	}
	for i, ref := range d.Reflections {
		_, err := r.db.ExecContext(ctx, `INSERT INTO reflections (student_id, id, title, lesson_title,
			content, created_at, curriculum_unit, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, ref.ID, ref.Title, ref.LessonTitle, ref.Content,
			ref.CreatedAt.UTC().Format(time.RFC3339), ref.CurriculumUnit, i,
		)
		if err != nil {
			return fmt.Errorf("inserting reflection %s: %w", ref.ID, err)
		}
	}
	for i := range d.Meetings {
		m := d.Meetings[i]
		m.StudentID = s.ID
		if _, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, m.ID); err != nil {
			return fmt.Errorf("replacing meeting %s: %w", m.ID, err)
		}
		if err := insertMeeting(ctx, r.db, &m); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteStudentRepo) insertProfile(ctx context.Context, studentID string, p domain.StudentProfile) error {
	strengths, err := toJSON(p.Strengths)
	if err != nil {
		return err
	}
	skills, err := toJSON(p.TopDurableSkills)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO student_profiles (student_id, strengths_json, career_vision,
		personality_type, experience_count, durable_skills_summary, top_skills_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		studentID, strengths, p.CareerVision, p.PersonalityType, p.ExperienceCount,
		p.DurableSkillsSummary, skills,
	)
	if err != nil {
		return fmt.Errorf("inserting student profile: %w", err)
	}
	return nil
}

func (r *SQLiteStudentRepo) insertGoal(ctx context.Context, studentID string, g domain.SmartGoal, order int) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO goals (student_id, id, title, description, status, order_index)
		VALUES (?, ?, ?, ?, ?, ?)`,
		studentID, g.ID, g.Title, g.Description, string(g.Status), order,
	)
	if err != nil {
		return fmt.Errorf("inserting goal %s: %w", g.ID, err)
	}
	for i, st := range g.Subtasks {
		_, err := r.db.ExecContext(ctx, `INSERT INTO subtasks (student_id, goal_id, id, title, completed, order_index)
			VALUES (?, ?, ?, ?, ?, ?)`,
			studentID, g.ID, st.ID, st.Title, boolToInt(st.Completed), i,
		)
		if err != nil {
			return fmt.Errorf("inserting subtask %s: %w", st.ID, err)
		}
	}
	return nil
}

func (r *SQLiteStudentRepo) loadProfile(ctx context.Context, studentID string) (domain.StudentProfile, error) {
	var p domain.StudentProfile
	var strengths, skills string
	err := r.db.QueryRowContext(ctx, `SELECT strengths_json, career_vision, personality_type,
		experience_count, durable_skills_summary, top_skills_json
		FROM student_profiles WHERE student_id = ?`, studentID).
		Scan(&strengths, &p.CareerVision, &p.PersonalityType, &p.ExperienceCount, &p.DurableSkillsSummary, &skills)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StudentProfile{Strengths: []string{}, TopDurableSkills: []domain.DurableSkill{}}, nil
	}
	if err != nil {
		return p, fmt.Errorf("loading student profile: %w", err)
	}
	if p.Strengths, err = fromJSON[string](strengths); err != nil {
		return p, err
	}
	if p.TopDurableSkills, err = fromJSON[domain.DurableSkill](skills); err != nil {
		return p, err
	}
	return p, nil
}

func (r *SQLiteStudentRepo) loadMilestones(ctx context.Context, studentID string) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, source, status, progress, progress_label,
		description, due_date, completed_at
		FROM milestones WHERE student_id = ? ORDER BY order_index`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	defer rows.Close()

	out := []domain.Milestone{}
	for rows.Next() {
		var m domain.Milestone
		var source, status string
		var due, completed sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &source, &status, &m.Progress, &m.ProgressLabel,
			&m.Description, &due, &completed); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		m.Source = domain.MilestoneSource(source)
		m.Status = domain.MilestoneStatus(status)
		m.DueDate = parseNullableTime(due, time.RFC3339)
		m.CompletedAt = parseNullableTime(completed, time.RFC3339)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteStudentRepo) loadQualityFlags(ctx context.Context, studentID string) ([]domain.QualityFlag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT milestone_id, reason, flagged_at
		FROM quality_flags WHERE student_id = ? ORDER BY id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading quality flags: %w", err)
	}
	defer rows.Close()

	out := []domain.QualityFlag{}
	for rows.Next() {
		var f domain.QualityFlag
		var flagged string
		if err := rows.Scan(&f.MilestoneID, &f.Reason, &flagged); err != nil {
			return nil, fmt.Errorf("scanning quality flag: %w", err)
		}
		if f.FlaggedAt, err = parseTime(flagged); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SQLiteStudentRepo) loadGoals(ctx context.Context, studentID string) ([]domain.SmartGoal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, status
		FROM goals WHERE student_id = ? ORDER BY order_index`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	goals := []domain.SmartGoal{}
	index := map[string]int{}
	for rows.Next() {
		var g domain.SmartGoal
		var status string
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		g.Status = domain.GoalStatus(status)
		g.Subtasks = []domain.Subtask{}
		index[g.ID] = len(goals)
		goals = append(goals, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	// The goal rows must be closed first: an in-memory database has a single connection.
	subRows, err := r.db.QueryContext(ctx, `SELECT goal_id, id, title, completed
		FROM subtasks WHERE student_id = ? ORDER BY goal_id, order_index`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading subtasks: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var goalID string
		var st domain.Subtask
		var completed int
		if err := subRows.Scan(&goalID, &st.ID, &st.Title, &completed); err != nil {
			return nil, fmt.Errorf("scanning subtask: %w", err)
		}
		st.Completed = intToBool(completed)
		if i, ok := index[goalID]; ok {
			goals[i].Subtasks = append(goals[i].Subtasks, st)
		}
	}
	return goals, subRows.Err()
}

func (r *SQLiteStudentRepo) loadBookmarks(ctx context.Context, studentID string) ([]domain.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type, title, tags_json, is_top_pick, median_salary, education_years
		FROM bookmarks WHERE student_id = ? ORDER BY order_index`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	defer rows.Close()

	out := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		var kind, tags string
		var topPick int
		var salary sql.NullInt64
		if err := rows.Scan(&b.ID, &kind, &b.Title, &tags, &topPick, &salary, &b.EducationYears); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.Type = domain.BookmarkType(kind)
		b.IsTopPick = intToBool(topPick)
		b.MedianSalary = nullableInt(salary)
		if b.Tags, err = fromJSON[string](tags); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteStudentRepo) loadReflections(ctx context.Context, studentID string) ([]domain.Reflection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, lesson_title, content, created_at, curriculum_unit
		FROM reflections WHERE student_id = ? ORDER BY order_index`, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading reflections: %w", err)
	}
	defer rows.Close()

	out := []domain.Reflection{}
	for rows.Next() {
		var ref domain.Reflection
		var created string
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.LessonTitle, &ref.Content, &created, &ref.CurriculumUnit); err != nil {
			return nil, fmt.Errorf("scanning reflection: %w", err)
		}
		if ref.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
