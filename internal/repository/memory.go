package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/counsel/internal/domain"
)

// MemoryStore keeps students and meetings in process. Its two views share
// state so a meeting added through Meetings shows up in Students().Get.
type MemoryStore struct {
	mu       sync.RWMutex
	students map[string]domain.StudentData
	meetings map[string]domain.Meeting
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students: make(map[string]domain.StudentData),
		meetings: make(map[string]domain.Meeting),
	}
}

func (s *MemoryStore) Students() *MemoryStudentRepo { return &MemoryStudentRepo{s: s} }
func (s *MemoryStore) Meetings() *MemoryMeetingRepo { return &MemoryMeetingRepo{s: s} }

// MemoryStudentRepo implements StudentRepo over a MemoryStore.
type MemoryStudentRepo struct {
	s *MemoryStore
}

func (r *MemoryStudentRepo) Get(_ context.Context, id string) (*domain.StudentData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	out := cloneStudentData(d)
	out.Meetings = []domain.Meeting{}
	for _, m := range r.s.sortedMeetings(id) {
		out.Meetings = append(out.Meetings, cloneMeeting(m))
	}
	return &out, nil
}

func (r *MemoryStudentRepo) List(_ context.Context) ([]domain.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Student, 0, len(r.s.students))
	for _, d := range r.s.students {
		out = append(out, d.Student)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := strings.Compare(a.LastName, b.LastName); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.FirstName, b.FirstName); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *MemoryStudentRepo) Save(_ context.Context, d *domain.StudentData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := cloneStudentData(*d)
	for _, m := range stored.Meetings {
		m.StudentID = stored.Student.ID
		r.s.meetings[m.ID] = m
	}
	stored.Meetings = nil
	r.s.students[stored.Student.ID] = stored
	return nil
}

// MemoryMeetingRepo implements MeetingRepo over a MemoryStore.
type MemoryMeetingRepo struct {
	s *MemoryStore
}

func (r *MemoryMeetingRepo) Add(_ context.Context, m *domain.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[m.StudentID]; !ok {
		return fmt.Errorf("inserting meeting: student %s: %w", m.StudentID, ErrNotFound)
	}
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
	r.s.meetings[m.ID] = cloneMeeting(*m)
	return nil
}

func (r *MemoryMeetingRepo) GetByID(_ context.Context, id string) (*domain.Meeting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.meetings[id]
	if !ok {
		return nil, fmt.Errorf("meeting: %w", ErrNotFound)
	}
	out := cloneMeeting(m)
	return &out, nil
}

func (r *MemoryMeetingRepo) ListByStudent(_ context.Context, studentID string) ([]*domain.Meeting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Meeting
	for _, m := range r.s.sortedMeetings(studentID) {
		c := cloneMeeting(m)
		out = append(out, &c)
	}
	return out, nil
}

func (r *MemoryMeetingRepo) Complete(_ context.Context, id string, summary domain.MeetingSummary) error {
	return r.update(id, func(m *domain.Meeting) {
		m.Status = domain.MeetingCompleted
		s := cloneSummary(summary)
		m.Summary = &s
	})
}

func (r *MemoryMeetingRepo) Cancel(_ context.Context, id string) error {
	return r.update(id, func(m *domain.Meeting) {
		m.Status = domain.MeetingCancelled
	})
}

func (r *MemoryMeetingRepo) update(id string, fn func(*domain.Meeting)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.meetings[id]
	if !ok {
		return fmt.Errorf("meeting: %w", ErrNotFound)
	}
	fn(&m)
	r.s.meetings[id] = m
	return nil
}

// sortedMeetings must be called with the lock held.
func (s *MemoryStore) sortedMeetings(studentID string) []domain.Meeting {
	var out []domain.Meeting
	for _, m := range s.meetings {
		if m.StudentID == studentID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.After(out[j].ScheduledDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneStudentData(d domain.StudentData) domain.StudentData {
	d.Profile.Strengths = slices.Clone(d.Profile.Strengths)
	d.Profile.TopDurableSkills = slices.Clone(d.Profile.TopDurableSkills)
	d.Milestones = slices.Clone(d.Milestones)
	d.QualityFlags = slices.Clone(d.QualityFlags)
	d.Goals = slices.Clone(d.Goals)
	for i := range d.Goals {
		d.Goals[i].Subtasks = slices.Clone(d.Goals[i].Subtasks)
	}
	d.Bookmarks = slices.Clone(d.Bookmarks)
	for i := range d.Bookmarks {
		d.Bookmarks[i].Tags = slices.Clone(d.Bookmarks[i].Tags)
	}
	d.Reflections = slices.Clone(d.Reflections)
	meetings := make([]domain.Meeting, len(d.Meetings))
	for i, m := range d.Meetings {
		meetings[i] = cloneMeeting(m)
	}
	d.Meetings = meetings
	return d
}

func cloneMeeting(m domain.Meeting) domain.Meeting {
	m.Agenda = slices.Clone(m.Agenda)
	if m.Summary != nil {
		s := cloneSummary(*m.Summary)
		m.Summary = &s
	}
	return m
}

func cloneSummary(s domain.MeetingSummary) domain.MeetingSummary {
	s.KeyPoints = slices.Clone(s.KeyPoints)
	s.RecommendedActions = slices.Clone(s.RecommendedActions)
	return s
}
