package validation

import (
	"errors"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema does not compile")
	ErrSchemaValidation = errors.New("validation: document rejected")
)

// Issue is one rejected field. Field is a dotted struct path for ozzo errors
// and a JSON pointer for schema errors.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	field := strings.TrimSpace(i.Field)
	if field == "" {
		field = "#"
	}
	if i.Message == "" {
		return field
	}
	return field + ": " + i.Message
}

// Error reports every issue found in one document. It matches
// ErrSchemaValidation and the underlying library error with errors.Is/As.
type Error struct {
	Source string
	Issues []Issue
	cause  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	msg := strings.Join(parts, "; ")
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	if e.Source != "" {
		return e.Source + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrSchemaValidation}
	}
	return []error{ErrSchemaValidation, e.cause}
}

// Issues returns the issues carried by err. Errors of other kinds become a
// single issue holding their message.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) {
		return schemaIssues(schemaErr)
	}
	return []Issue{{Message: err.Error()}}
}

// schemaIssues flattens a jsonschema error tree to its leaves.
func schemaIssues(err *jsonschema.ValidationError) []Issue {
	if len(err.Causes) == 0 {
		return []Issue{{
			Field:   strings.TrimSpace(err.InstanceLocation),
			Message: strings.TrimSpace(err.Message),
		}}
	}
	var issues []Issue
	for _, cause := range err.Causes {
		issues = append(issues, schemaIssues(cause)...)
	}
	return issues
}
