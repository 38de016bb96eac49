package commands

import goerrors "github.com/goliatone/go-errors"

// Text codes attached to errors returned by Handler.Execute.
const (
	CodeInvalidMessage = "SITE_COMMAND_INVALID"
	CodeCancelled      = "SITE_COMMAND_CANCELLED"
	CodeTimedOut       = "SITE_COMMAND_TIMED_OUT"
	CodeFailed         = "SITE_COMMAND_FAILED"
)

type failure func(error) error

var (
	invalidMessage failure = func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "site command rejected").WithTextCode(CodeInvalidMessage)
	}
	cancelled failure = func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command cancelled").WithTextCode(CodeCancelled)
	}
	timedOut failure = func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command timed out").WithTextCode(CodeTimedOut)
	}
	failed failure = func(err error) error {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "site command failed").WithTextCode(CodeFailed)
	}
)

// wrap leaves errors that already carry a go-errors category untouched so the
// innermost classification wins.
func (f failure) wrap(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return f(err)
}

// classify picks the failure kind for an error returned by a command function
// or observed on its context.
func classify(err error) failure {
	switch statusOf(err) {
	case RunTimedOut:
		return timedOut
	case RunCancelled:
		return cancelled
	default:
		return failed
	}
}

// IsValidation reports whether err came from message validation.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsInterrupted reports whether a command stopped because its context was
// cancelled or ran past its deadline.
func IsInterrupted(err error) bool {
	status := statusOf(err)
	return status == RunCancelled || status == RunTimedOut
}
