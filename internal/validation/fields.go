package validation

import (
	"errors"
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldIssues flattens ozzo-validation errors into a stable, field-sorted
// issue list. Nested errors use dotted field paths.
func FieldIssues(err error) []Issue {
	if err == nil {
		return nil
	}
	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) {
		return Issues(err)
	}
	issues := []Issue{}
	collectFieldIssues("", fieldErrs, &issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})
	return issues
}

// NewFieldError turns ozzo-validation errors into an *Error so struct and
// schema failures are handled alike.
func NewFieldError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Issues: FieldIssues(err), cause: err}
}

func collectFieldIssues(prefix string, errs ozzo.Errors, issues *[]Issue) {
	for field, fieldErr := range errs {
		location := field
		if prefix != "" {
			location = prefix + "." + field
		}
		var nested ozzo.Errors
		if errors.As(fieldErr, &nested) {
			collectFieldIssues(location, nested, issues)
			continue
		}
		*issues = append(*issues, Issue{Field: location, Message: fieldErr.Error()})
	}
}
