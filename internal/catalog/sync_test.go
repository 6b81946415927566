package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func seedEntry(t *testing.T, repo *MemoryEntryRepository, projectID uuid.UUID, key string, values map[string]string) *Entry {
	t.Helper()
	stored, err := repo.Insert(context.Background(), &Entry{
		ProjectID: projectID,
		Key:       key,
		Values:    values,
	})
	if err != nil {
		t.Fatalf("seed %q: %v", key, err)
	}
	return stored
}

func TestSyncFillsEmptySiblings(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := NewMemoryEntryRepository()

	edited := seedEntry(t, repo, projectID, "toolbar.save", map[string]string{"en": "Save", "zh": "保存", "ja": ""})
	empty := seedEntry(t, repo, projectID, "dialog.save", map[string]string{"en": "Save", "zh": "", "ja": ""})
	filled := seedEntry(t, repo, projectID, "menu.save", map[string]string{"en": "Save", "zh": "储存", "ja": ""})
	other := seedEntry(t, repo, projectID, "dialog.close", map[string]string{"en": "Close", "zh": "", "ja": ""})

	syncer := NewSyncer(repo)
	updated, err := syncer.Sync(ctx, projectID, edited.ID, testLanguages(), "zh")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if len(updated) != 1 || updated[0].ID != empty.ID {
		t.Fatalf("expected only the empty sibling to update, got %v", updated)
	}

	got, err := repo.GetByID(ctx, empty.ID)
	if err != nil {
		t.Fatalf("reload sibling: %v", err)
	}
	if got.Values["zh"] != "保存" {
		t.Fatalf("sibling zh not filled: %v", got.Values)
	}

	got, _ = repo.GetByID(ctx, filled.ID)
	if got.Values["zh"] != "储存" {
		t.Fatalf("non-empty sibling must keep its value: %v", got.Values)
	}
	got, _ = repo.GetByID(ctx, other.ID)
	if got.Values["zh"] != "" {
		t.Fatalf("entry with a different default text must not change: %v", got.Values)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := NewMemoryEntryRepository()

	edited := seedEntry(t, repo, projectID, "toolbar.save", map[string]string{"en": "Save", "zh": "保存", "ja": ""})
	seedEntry(t, repo, projectID, "dialog.save", map[string]string{"en": "Save", "zh": "", "ja": ""})

	syncer := NewSyncer(repo)
	first, err := syncer.Sync(ctx, projectID, edited.ID, testLanguages(), "zh")
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one update on first run, got %d", len(first))
	}

	second, err := syncer.Sync(ctx, projectID, edited.ID, testLanguages(), "zh")
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second run should update nothing, got %d", len(second))
	}
}

func TestSyncSkipsDefaultLanguageEdits(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := NewMemoryEntryRepository()
	edited := seedEntry(t, repo, projectID, "toolbar.save", map[string]string{"en": "Save", "zh": "保存"})

	syncer := NewSyncer(repo)
	updated, err := syncer.Sync(ctx, projectID, edited.ID, testLanguages(), "en")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if updated != nil {
		t.Fatalf("default language edit must not propagate, got %v", updated)
	}
}

func TestSyncSkipsEmptyEditedValue(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := NewMemoryEntryRepository()
	edited := seedEntry(t, repo, projectID, "toolbar.save", map[string]string{"en": "Save", "zh": ""})
	seedEntry(t, repo, projectID, "dialog.save", map[string]string{"en": "Save", "zh": ""})

	syncer := NewSyncer(repo)
	updated, err := syncer.Sync(ctx, projectID, edited.ID, testLanguages(), "zh")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if updated != nil {
		t.Fatalf("empty edited value must not propagate, got %v", updated)
	}
}

func TestSyncRequiresEntryAndDefaultLanguage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEntryRepository()
	syncer := NewSyncer(repo)

	if _, err := syncer.Sync(ctx, uuid.New(), uuid.Nil, testLanguages(), "zh"); !errors.Is(err, ErrEntryRequired) {
		t.Fatalf("expected ErrEntryRequired, got %v", err)
	}
	if _, err := syncer.Sync(ctx, uuid.New(), uuid.New(), []Language{{Code: "en"}}, "zh"); !errors.Is(err, ErrDefaultLangMissing) {
		t.Fatalf("expected ErrDefaultLangMissing, got %v", err)
	}
}
