// Package seed carries the demo roster baked into the binary.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/importer"
)

//go:embed students.yaml
var rosterYAML []byte

// DefaultStudentID is the student opened when none is named.
const DefaultStudentID = "jessica-santiago"

// Roster returns the raw demo roster document.
func Roster() []byte {
	return rosterYAML
}

// Students parses, validates and converts the demo roster. Relative
// reflection dates resolve against now.
func Students(now time.Time) ([]*domain.StudentData, error) {
	schema, err := importer.ParseRoster(rosterYAML)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateRoster(schema); len(errs) > 0 {
		return nil, fmt.Errorf("demo roster invalid: %w", errors.Join(errs...))
	}
	return importer.Convert(schema, now)
}
