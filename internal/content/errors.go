package content

import (
	"errors"
	"fmt"
)

var (
	ErrFixtureInvalid   = errors.New("content: fixture failed validation")
	ErrInsightInvalid   = errors.New("content: insight failed validation")
	ErrCaseStudyInvalid = errors.New("content: case study failed validation")
)

// NotFoundError reports a lookup for a slug that is not in the catalog.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
