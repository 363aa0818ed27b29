package service

import (
	"context"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/ontrack"
	"github.com/alexanderramin/counsel/internal/repository"
)

type studentService struct {
	students repository.StudentRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewStudentService(students repository.StudentRepo, observers ...UseCaseObserver) StudentService {
	return &studentService{students: students, observer: useCaseObserverOrNoop(observers), now: time.Now}
}

func (s *studentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.students.List(ctx)
}

func (s *studentService) Get(ctx context.Context, id string) (*domain.StudentData, error) {
	return s.students.Get(ctx, id)
}

func (s *studentService) OnTrack(ctx context.Context, id string) (report *ontrack.Report, err error) {
	fields := map[string]any{"student_id": id}
	defer observe(ctx, s.observer, "evaluate-on-track", fields)(&err)

	data, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r := ontrack.BuildReport(*data, s.now())
	fields["status"] = string(r.Status)
	fields["stale"] = r.Stale()
	return &r, nil
}
