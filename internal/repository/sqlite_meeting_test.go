package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/testutil"
)

func TestMeetingRepo_AddRejectsUnknownStudent(t *testing.T) {
	repo := NewSQLiteMeetingRepo(testutil.NewTestDB(t))

	err := repo.Add(context.Background(), &domain.Meeting{
		StudentID:     "nobody",
		Title:         "Orphan",
		ScheduledDate: time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC),
		Duration:      30,
	})
	assert.Error(t, err)
}

func TestMeetingRepo_AgendaRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	student := testutil.NewTestStudentData("Jessica", "Santiago")
	require.NoError(t, NewSQLiteStudentRepo(database).Save(ctx, student))
	repo := NewSQLiteMeetingRepo(database)

	m := &domain.Meeting{
		StudentID:     student.Student.ID,
		Title:         "FAFSA",
		ScheduledDate: time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC),
		Duration:      30,
		Agenda: []domain.AgendaItem{
			{
				ID: "agenda-new-0", Topic: "FAFSA", Source: domain.ProvenanceAIRecommended,
				SourceReason: "Due soon", Duration: 25,
				SourceReference: &domain.SourceReference{Type: domain.SourceMilestone, ID: "m-5"},
			},
			{ID: "agenda-wrapup", Topic: "Wrap-up & Next Steps", Source: domain.ProvenanceCounselorAdded, Duration: 5},
		},
	}
	require.NoError(t, repo.Add(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Agenda, got.Agenda)
	assert.Nil(t, got.Summary)
}
