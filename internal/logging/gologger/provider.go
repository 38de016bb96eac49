package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// Provider hands out go-logger child loggers for each site module. Module
// loggers are built once and reused.
type Provider struct {
	root    *glog.BaseLogger
	mu      sync.Mutex
	modules map[string]interfaces.Logger
}

// NewProvider builds a go-logger root from the logging section of the site
// config. Focus limits output to the listed module names.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options := []glog.Option{format(), glog.WithAddSource(cfg.AddSource)}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}

	root := glog.NewLogger(options...)
	if focus := compact(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, modules: map[string]interfaces.Logger{}}, nil
}

// FromConfig returns the provider selected by cfg.Provider. "none" yields a
// nil provider so module loggers fall back to logging.NoOp.
func FromConfig(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "none":
		return nil, nil
	case "", "gologger":
		provider, err := NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("logging: unknown provider %q", cfg.Provider)
	}
}

// GetLogger returns the logger for module name; a blank name yields the root.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.modules[name]; ok {
		return logger
	}
	var logger interfaces.Logger
	if name == "" {
		logger = wrap(p.root)
	} else {
		logger = wrap(p.root.GetLogger(name))
	}
	p.modules[name] = logger
	return logger
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(maps.Clone(fields)))
	}
	return l
}

// WithContext binds ctx and copies request fields stored with
// logging.ContextWithFields onto the returned logger.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	bound := &adapter{inner: l.inner.WithContext(ctx)}
	if fields := logging.ContextFields(ctx); len(fields) > 0 {
		return bound.WithFields(fields)
	}
	return bound
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeConsole,
	"console": glog.WithLoggerTypeConsole,
	"json":    glog.WithLoggerTypeJSON,
	"pretty":  glog.WithLoggerTypePretty,
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
