package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Child rows are keyed by (student_id, id): provider ids are only unique per
// student. order_index preserves provider order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id                TEXT PRIMARY KEY,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		grade             INTEGER NOT NULL,
		email             TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		avatar_url        TEXT NOT NULL DEFAULT '',
		mission_statement TEXT NOT NULL DEFAULT '',
		gpa               REAL NOT NULL DEFAULT 0,
		sat_score         INTEGER,
		act_score         INTEGER,
		class_rank        TEXT NOT NULL DEFAULT '',
		readiness_score   INTEGER NOT NULL DEFAULT 0
		                  CHECK(readiness_score BETWEEN 0 AND 100),
		on_track_status   TEXT NOT NULL DEFAULT 'on_track'
		                  CHECK(on_track_status IN ('on_track','off_track')),
		manual_override   INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS student_profiles (
		student_id             TEXT PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
		strengths_json         TEXT NOT NULL DEFAULT '[]',
		career_vision          TEXT NOT NULL DEFAULT '',
		personality_type       TEXT NOT NULL DEFAULT '',
		experience_count       INTEGER NOT NULL DEFAULT 0,
		durable_skills_summary TEXT NOT NULL DEFAULT '',
		top_skills_json        TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		student_id     TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		id             TEXT NOT NULL,
		title          TEXT NOT NULL,
		source         TEXT NOT NULL DEFAULT 'system_generated'
		               CHECK(source IN ('system_generated','custom')),
		status         TEXT NOT NULL DEFAULT 'not_done'
		               CHECK(status IN ('done','not_done')),
		progress       INTEGER NOT NULL DEFAULT 0
		               CHECK(progress BETWEEN 0 AND 100),
		progress_label TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		due_date       TEXT,
		completed_at   TEXT,
		order_index    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS quality_flags (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id   TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		milestone_id TEXT NOT NULL,
		reason       TEXT NOT NULL DEFAULT '',
		flagged_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		student_id  TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','completed','archived')),
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		student_id  TEXT NOT NULL,
		goal_id     TEXT NOT NULL,
		id          TEXT NOT NULL,
		title       TEXT NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, goal_id, id),
		FOREIGN KEY (student_id, goal_id) REFERENCES goals(student_id, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS bookmarks (
		student_id      TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		id              TEXT NOT NULL,
		type            TEXT NOT NULL CHECK(type IN ('career','school','program')),
		title           TEXT NOT NULL,
		tags_json       TEXT NOT NULL DEFAULT '[]',
		is_top_pick     INTEGER NOT NULL DEFAULT 0,
		median_salary   INTEGER,
		education_years TEXT NOT NULL DEFAULT '',
		order_index     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS reflections (
		student_id      TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		id              TEXT NOT NULL,
		title           TEXT NOT NULL,
		lesson_title    TEXT NOT NULL DEFAULT '',
		content         TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		curriculum_unit TEXT NOT NULL DEFAULT '',
		order_index     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id             TEXT PRIMARY KEY,
		student_id     TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		duration       INTEGER NOT NULL,
		status         TEXT NOT NULL DEFAULT 'scheduled'
		               CHECK(status IN ('scheduled','completed','cancelled')),
		agenda_json    TEXT NOT NULL DEFAULT '[]',
		summary_json   TEXT,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_students_name ON students(last_name, first_name)`,
	`CREATE INDEX IF NOT EXISTS idx_quality_flags_student ON quality_flags(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_student ON meetings(student_id, scheduled_date)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_status ON meetings(status)`,
}
