package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/internal/validation"
)

const maxBodyBytes = 64 << 10

var errBodyRequired = errors.New("http: request body is required")

type errorResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Issues  []validation.Issue `json:"issues,omitempty"`
}

type badRequestError struct {
	cause error
}

func (e *badRequestError) Error() string {
	return "malformed request body: " + e.cause.Error()
}

func (e *badRequestError) Unwrap() error {
	return e.cause
}

// joinPath joins route segments into a rooted path without a trailing slash.
func joinPath(segments ...string) string {
	parts := []string{"/"}
	for _, segment := range segments {
		parts = append(parts, strings.TrimSpace(segment))
	}
	return path.Join(parts...)
}

// decodeJSON reads a single JSON object from the body. Failures come back as
// *badRequestError.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return &badRequestError{cause: errBodyRequired}
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = errBodyRequired
		}
		return &badRequestError{cause: err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// errorRule maps one family of errors onto a status and an error code.
// message returns the client facing text; nil means err.Error().
type errorRule struct {
	match   func(error) bool
	status  int
	code    string
	message func(error) string
	issues  bool
}

func matches(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func fixed(text string) func(error) string {
	return func(error) string { return text }
}

var errorRules = []errorRule{
	{
		match:  func(err error) bool { var bad *badRequestError; return errors.As(err, &bad) },
		status: http.StatusBadRequest,
		code:   "bad_request",
	},
	{
		match:   matches(validation.ErrSchemaValidation),
		status:  http.StatusBadRequest,
		code:    "validation_failed",
		message: fixed("Invalid request"),
		issues:  true,
	},
	{
		match:  func(err error) bool { return content.IsNotFound(err) || subscribers.IsNotFound(err) },
		status: http.StatusNotFound,
		code:   "not_found",
	},
	{
		match:   matches(subscribers.ErrTokenInvalid),
		status:  http.StatusForbidden,
		code:    "invalid_token",
		message: fixed("Unsubscribe link is invalid or expired"),
	},
	{
		match: func(err error) bool {
			return errors.Is(err, subscribers.ErrAudienceInvalid) || errors.Is(err, subscribers.ErrEmailRequired)
		},
		status: http.StatusBadRequest,
		code:   "bad_request",
	},
}

// mapError picks the first matching rule. Anything unmatched becomes an
// opaque 500.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}
	for _, rule := range errorRules {
		if !rule.match(err) {
			continue
		}
		resp := errorResponse{Error: rule.code, Message: err.Error()}
		if rule.message != nil {
			resp.Message = rule.message(err)
		}
		if rule.issues {
			resp.Issues = validation.Issues(err)
		}
		return rule.status, resp
	}
	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "Something went wrong. Please try again later.",
	}
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
