package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-site/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "site.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, searchModule)

	if len(provider.requested) != 1 || provider.requested[0] != searchModule {
		t.Fatalf("expected module %s, got %v", searchModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != searchModule {
		t.Fatalf("expected module field %s, got %v", searchModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "  ")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		contentModule:     ContentLogger,
		searchModule:      SearchLogger,
		lintModule:        LintLogger,
		apiModule:         APILogger,
		emailModule:       EmailLogger,
		subscribersModule: SubscribersLogger,
		commandsModule:    CommandsLogger,
		mcpModule:         MCPLogger,
	}
	for module, fn := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = fn(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithRequestContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithRequestContext(rec, "POST", "/api/send-email", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldRequestMethod] != "POST" || got[fieldRequestPath] != "/api/send-email" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldRequestID]; ok {
		t.Fatalf("expected empty request id to be skipped, got %v", got)
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatal("expected ContextFields to return a copy")
	}

	rec := &recordingLogger{}
	_ = FromContext(ctx, rec)
	if len(rec.fields) != 1 || rec.fields[0]["b"] != 2 {
		t.Fatalf("expected context fields on logger, got %v", rec.fields)
	}
}
