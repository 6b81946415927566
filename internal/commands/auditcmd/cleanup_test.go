package auditcmd

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-localize/internal/audit"
	command "github.com/goliatone/go-command"
)

func seedRecords(t *testing.T, store *audit.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	if _, err := store.Insert(ctx, &audit.Record{
		Operation: audit.OpLogin,
		Username:  "ada",
		CreatedAt: time.Now().AddDate(0, 0, -120),
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if _, err := store.Insert(ctx, &audit.Record{
		Operation: audit.OpAddKey,
		Username:  "grace",
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestCleanupRemovesExpiredRecords(t *testing.T) {
	store := audit.NewMemoryStore()
	seedRecords(t, store)

	handler := NewCleanupHandler(store, nil)
	if err := handler.Execute(context.Background(), CleanupCommand{}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	count, _ := store.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected 1 remaining record, got %d", count)
	}
}

func TestCleanupDryRunKeepsRecords(t *testing.T) {
	store := audit.NewMemoryStore()
	seedRecords(t, store)

	handler := NewCleanupHandler(store, nil)
	if err := handler.Execute(context.Background(), CleanupCommand{DryRun: true}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	count, _ := store.Count(context.Background())
	if count != 2 {
		t.Fatalf("dry run must not delete, got %d records", count)
	}
}

func TestCleanupRejectsNegativeRetention(t *testing.T) {
	handler := NewCleanupHandler(audit.NewMemoryStore(), nil)
	if err := handler.Execute(context.Background(), CleanupCommand{RetentionDays: -1}); err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestRegisterCleanupJobDefaultsToDaily(t *testing.T) {
	store := audit.NewMemoryStore()
	seedRecords(t, store)
	handler := NewCleanupHandler(store, nil)

	var registered command.HandlerConfig
	var job func() error
	register := func(cfg command.HandlerConfig, h any) error {
		registered = cfg
		if fn, ok := h.(func() error); ok {
			job = fn
		}
		return nil
	}

	if err := RegisterCleanupJob(register, handler, CleanupCommand{}, ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.Expression != DefaultCleanupSchedule {
		t.Fatalf("expected %q schedule, got %q", DefaultCleanupSchedule, registered.Expression)
	}
	if job == nil {
		t.Fatal("job function not captured")
	}
	if err := job(); err != nil {
		t.Fatalf("job run failed: %v", err)
	}
	if count, _ := store.Count(context.Background()); count != 1 {
		t.Fatalf("job should apply retention, got %d records", count)
	}
}
