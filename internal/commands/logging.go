package commands

import (
	"strings"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// CommandLogger returns the commands module logger tagged with the command
// group, so lint and index runs can be told apart in one log stream.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":     "command",
		"command_group": name,
	})
}
