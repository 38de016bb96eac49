package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// RunStatus is the outcome of one command run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
	RunTimedOut  RunStatus = "timed_out"
)

func statusOf(err error) RunStatus {
	switch {
	case err == nil:
		return RunSucceeded
	case errors.Is(err, context.DeadlineExceeded):
		return RunTimedOut
	case errors.Is(err, context.Canceled):
		return RunCancelled
	default:
		return RunFailed
	}
}

// TelemetryInfo describes one command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Started   time.Time
	Duration  time.Duration
	Status    RunStatus
	Error     error
}

// Telemetry is invoked after every command run.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one entry per run: info on success, warn when the
// run was interrupted, error otherwise.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case RunSucceeded:
			entry.Info("command.run.done", args...)
		case RunCancelled, RunTimedOut:
			entry.Warn("command.run.interrupted", append(args, "error", info.Error)...)
		default:
			entry.Error("command.run.failed", append(args, "error", info.Error)...)
		}
	}
}
