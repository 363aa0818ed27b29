package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/db"
	"github.com/alexanderramin/counsel/internal/domain"
)

const meetingColumns = `id, student_id, title, scheduled_date, duration, status, agenda_json, summary_json, created_at`

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	db db.DBTX
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: conn}
}

func (r *SQLiteMeetingRepo) Add(ctx context.Context, m *domain.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC().Truncate(time.Second)
	if m.Status == "" {
		m.Status = domain.MeetingScheduled
	}
	if m.Agenda == nil {
		m.Agenda = []domain.AgendaItem{}
	}
	return insertMeeting(ctx, r.db, m)
}

func insertMeeting(ctx context.Context, conn db.DBTX, m *domain.Meeting) error {
	agenda, err := toJSON(m.Agenda)
	if err != nil {
		return err
	}
	summary, err := summaryToValue(m.Summary)
	if err != nil {
		return err
	}

	query := `INSERT INTO meetings (` + meetingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = conn.ExecContext(ctx, query,
		m.ID,
		m.StudentID,
		m.Title,
		m.ScheduledDate.UTC().Format(time.RFC3339),
		m.Duration,
		string(m.Status),
		agenda,
		summary,
		m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meeting: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?`
	m, err := scanMeeting(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meeting: %w", ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMeetingRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Meeting, error) {
	return listMeetings(ctx, r.db, studentID)
}

func listMeetings(ctx context.Context, conn db.DBTX, studentID string) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings
		WHERE student_id = ? ORDER BY scheduled_date DESC, created_at DESC`
	rows, err := conn.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing meetings by student: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}

func (r *SQLiteMeetingRepo) Complete(ctx context.Context, id string, summary domain.MeetingSummary) error {
	value, err := summaryToValue(&summary)
	if err != nil {
		return err
	}
	query := `UPDATE meetings SET status = 'completed', summary_json = ? WHERE id = ?`
	return r.updateOne(ctx, "completing meeting", query, value, id)
}

func (r *SQLiteMeetingRepo) Cancel(ctx context.Context, id string) error {
	query := `UPDATE meetings SET status = 'cancelled' WHERE id = ?`
	return r.updateOne(ctx, "cancelling meeting", query, id)
}

func (r *SQLiteMeetingRepo) updateOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("meeting: %w", ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var status, scheduled, agenda, created string
	var summary sql.NullString

	err := row.Scan(&m.ID, &m.StudentID, &m.Title, &scheduled, &m.Duration, &status, &agenda, &summary, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}

	m.Status = domain.MeetingStatus(status)
	if m.ScheduledDate, err = parseTime(scheduled); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if m.Agenda, err = fromJSON[domain.AgendaItem](agenda); err != nil {
		return nil, err
	}
	if summary.Valid && summary.String != "" {
		var s domain.MeetingSummary
		if err := json.Unmarshal([]byte(summary.String), &s); err != nil {
			return nil, fmt.Errorf("decoding meeting summary: %w", err)
		}
		m.Summary = &s
	}
	return &m, nil
}

func summaryToValue(s *domain.MeetingSummary) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding meeting summary: %w", err)
	}
	return string(data), nil
}
