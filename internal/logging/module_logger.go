package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-site/pkg/interfaces"
)

const (
	rootModule        = "site"
	contentModule     = "site.content"
	searchModule      = "site.search"
	lintModule        = "site.lint"
	apiModule         = "site.api"
	emailModule       = "site.email"
	subscribersModule = "site.subscribers"
	commandsModule    = "site.commands"
	mcpModule         = "site.mcp"
)

const (
	fieldRequestMethod = "http_method"
	fieldRequestPath   = "http_path"
	fieldRequestID     = "request_id"
)

// ModuleLogger returns the logger registered for module, tagged with a
// "module" field. Without a provider it returns NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

func SearchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, searchModule)
}

func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

func APILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, apiModule)
}

func EmailLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, emailModule)
}

func SubscribersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, subscribersModule)
}

func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

func MCPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mcpModule)
}

// WithRequestContext enriches logger with the HTTP method, path and request
// id. Empty values are skipped.
func WithRequestContext(logger interfaces.Logger, method, path, requestID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(method); trimmed != "" {
		fields[fieldRequestMethod] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldRequestPath] = trimmed
	}
	if trimmed := strings.TrimSpace(requestID); trimmed != "" {
		fields[fieldRequestID] = trimmed
	}
	return WithFields(logger, fields)
}

// FromContext returns logger annotated with any fields stored on ctx through
// ContextWithFields.
func FromContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		logger = NoOp()
	}
	return WithFields(logger, ContextFields(ctx))
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
