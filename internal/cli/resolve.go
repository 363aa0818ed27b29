package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveStudentID accepts an exact id, a full or first name
// (case-insensitive), or an unambiguous id prefix.
func resolveStudentID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("student is required")
	}

	students, err := app.Students.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range students {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var byName []string
	for _, s := range students {
		if strings.EqualFold(s.FullName(), input) || strings.EqualFold(s.FirstName, input) {
			byName = append(byName, s.ID)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("student name %q is ambiguous (%d matches)", input, len(byName))
	}

	var byPrefix []string
	for _, s := range students {
		if strings.HasPrefix(s.ID, input) {
			byPrefix = append(byPrefix, s.ID)
		}
	}
	switch len(byPrefix) {
	case 0:
		return "", fmt.Errorf("student not found: %q", input)
	case 1:
		return byPrefix[0], nil
	default:
		return "", fmt.Errorf("student id prefix %q is ambiguous (%d matches)", input, len(byPrefix))
	}
}
