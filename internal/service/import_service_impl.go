package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/counsel/internal/db"
	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/importer"
	"github.com/alexanderramin/counsel/internal/repository"
)

type importService struct {
	students repository.StudentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewImportService saves rosters through students. When uow is set, a whole
// roster commits in one transaction against SQLite repos bound to it.
func NewImportService(students repository.StudentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		students: students,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *importService) ImportRoster(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadRoster(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading roster file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportRosterData(ctx context.Context, data []byte) (*ImportResult, error) {
	schema, err := importer.ParseRoster(data)
	if err != nil {
		return nil, err
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) SeedIfEmpty(ctx context.Context, data []byte) (*ImportResult, error) {
	existing, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	if len(existing) > 0 {
		return &ImportResult{}, nil
	}
	return s.ImportRosterData(ctx, data)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.RosterSchema) (result *ImportResult, err error) {
	fields := map[string]any{"students": len(schema.Students)}
	defer observe(ctx, s.observer, "import-roster", fields)(&err)

	if errs := importer.ValidateRoster(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	students, err := importer.Convert(schema, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting roster: %w", err)
	}

	if s.uow == nil {
		err = saveAll(ctx, s.students, students)
	} else {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return saveAll(ctx, repository.NewSQLiteStudentRepo(tx), students)
		})
	}
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Students: len(students)}
	for _, d := range students {
		result.Milestones += len(d.Milestones)
		result.Meetings += len(d.Meetings)
	}
	return result, nil
}

func saveAll(ctx context.Context, repo repository.StudentRepo, students []*domain.StudentData) error {
	for _, d := range students {
		if err := repo.Save(ctx, d); err != nil {
			return fmt.Errorf("saving student %q: %w", d.Student.FullName(), err)
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
