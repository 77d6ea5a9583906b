package services

import (
	"backoffice/internal/validation"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an operation references an entity id
// that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports one or more field invariant violations.
// No partial write occurs when it is returned.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
