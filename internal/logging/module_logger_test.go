package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-localize/pkg/interfaces"
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
	if fields == nil {
		fields = map[string]any{}
	}
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
	logger := ModuleLogger(nil, "localize.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure WithContext does not panic on the fallback.
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, catalogModule)

	if len(provider.requested) != 1 || provider.requested[0] != catalogModule {
		t.Fatalf("expected module %s, got %v", catalogModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != catalogModule {
		t.Fatalf("expected module field %s, got %v", catalogModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestGuardLoggerRequestsGuardModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = GuardLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != guardModule {
		t.Fatalf("expected guard module request, got %v", provider.requested)
	}
}

func TestAuditLoggerRequestsAuditModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = AuditLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != auditModule {
		t.Fatalf("expected audit module request, got %v", provider.requested)
	}
}

func TestWithFieldsSkipsUnsupportedLoggers(t *testing.T) {
	logger := NoOp()
	if got := WithFields(logger, map[string]any{"k": "v"}); got != logger {
		t.Fatalf("expected pass-through for non-fields loggers, got %T", got)
	}
	if got := WithFields(nil, map[string]any{"k": "v"}); got != nil {
		t.Fatalf("expected nil pass-through, got %T", got)
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
	if again := ContextFields(ctx); again["a"] != 1 {
		t.Fatalf("caller mutation leaked into context: %v", again)
	}
}
