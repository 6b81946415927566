package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testLanguages() []Language {
	return []Language{
		{Code: "en", Label: "English", FileName: "en-US", Default: true},
		{Code: "zh", Label: "Chinese", FileName: "zh-CN"},
		{Code: "ja", Label: "Japanese", FileName: "ja-JP"},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestReconcilePartitionsCreatesAndUpdates(t *testing.T) {
	projectID := uuid.New()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reconciler := NewReconciler(WithReconcilerClock(fixedClock(now)))

	existing := []*Entry{
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			Key:       "common.save",
			Values:    map[string]string{"en": "Save", "zh": "保存", "ja": "保存する"},
		},
	}
	rows := []Row{
		{Key: "common.save", Values: map[string]string{"en": "Save", "zh": "储存", "ja": "保存する"}},
		{Key: "common.cancel", Values: map[string]string{"en": "Cancel", "zh": "取消", "ja": "キャンセル"}},
	}

	result, err := reconciler.Reconcile(projectID, testLanguages(), existing, rows)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if len(result.ToCreate) != 1 {
		t.Fatalf("expected 1 create, got %d", len(result.ToCreate))
	}
	if result.ToCreate[0].Key != "common.cancel" {
		t.Fatalf("expected common.cancel to be created, got %q", result.ToCreate[0].Key)
	}
	if len(result.ToUpdate) != 1 {
		t.Fatalf("expected 1 update, got %d", len(result.ToUpdate))
	}

	patch := result.ToUpdate[0]
	if patch.EntryID != existing[0].ID {
		t.Fatalf("patch targets wrong entry: %s", patch.EntryID)
	}
	if len(patch.Values) != 1 || patch.Values["zh"] != "储存" {
		t.Fatalf("expected only the changed zh value in patch, got %v", patch.Values)
	}
	if patch.Module != nil {
		t.Fatalf("expected no module change, got %q", *patch.Module)
	}
}

func TestReconcileNoChangeProducesNoPatch(t *testing.T) {
	projectID := uuid.New()
	reconciler := NewReconciler()

	existing := []*Entry{
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			Key:       "common.save",
			Values:    map[string]string{"en": "Save", "zh": "保存", "ja": "保存する"},
		},
	}
	rows := []Row{
		{Key: "common.save", Values: map[string]string{"en": "Save", "zh": "保存", "ja": "保存する"}},
	}

	result, err := reconciler.Reconcile(projectID, testLanguages(), existing, rows)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(result.ToCreate) != 0 || len(result.ToUpdate) != 0 {
		t.Fatalf("expected empty result, got %d creates %d updates", len(result.ToCreate), len(result.ToUpdate))
	}
}

func TestReconcileInBatchDuplicateCollapses(t *testing.T) {
	projectID := uuid.New()
	reconciler := NewReconciler()

	rows := []Row{
		{Key: "common.ok", Values: map[string]string{"en": "OK", "zh": "好", "ja": "OK"}},
		{Key: "common.ok", Values: map[string]string{"en": "Okay", "zh": "可以", "ja": "オーケー"}},
	}

	result, err := reconciler.Reconcile(projectID, testLanguages(), nil, rows)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(result.ToCreate) != 1 {
		t.Fatalf("duplicate keys should collapse to one create, got %d", len(result.ToCreate))
	}
	if len(result.ToUpdate) != 0 {
		t.Fatalf("in-batch duplicates must not produce updates, got %d", len(result.ToUpdate))
	}
	if got := result.ToCreate[0].Values["en"]; got != "OK" {
		t.Fatalf("first occurrence should win, got en=%q", got)
	}
}

func TestReconcileMissingLanguagesShiftUpdatedAt(t *testing.T) {
	projectID := uuid.New()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reconciler := NewReconciler(WithReconcilerClock(fixedClock(now)))

	rows := []Row{
		{Key: "common.partial", Values: map[string]string{"en": "Partial"}},
	}

	result, err := reconciler.Reconcile(projectID, testLanguages(), nil, rows)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	entry := result.ToCreate[0]
	if entry.Missing != 2 {
		t.Fatalf("expected 2 missing languages, got %d", entry.Missing)
	}
	if want := now.Add(2 * time.Second); !entry.UpdatedAt.Equal(want) {
		t.Fatalf("expected UpdatedAt %v, got %v", want, entry.UpdatedAt)
	}
	if !entry.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt should stay at the batch time, got %v", entry.CreatedAt)
	}
}

func TestReconcileModuleChange(t *testing.T) {
	projectID := uuid.New()
	reconciler := NewReconciler()

	existing := []*Entry{
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			Module:    "common",
			Key:       "common.save",
			Values:    map[string]string{"en": "Save", "zh": "保存", "ja": "保存する"},
		},
	}
	rows := []Row{
		{Key: "common.save", Module: "forms", Values: map[string]string{"en": "Save", "zh": "保存", "ja": "保存する"}},
	}

	result, err := reconciler.Reconcile(projectID, testLanguages(), existing, rows)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(result.ToUpdate) != 1 {
		t.Fatalf("expected 1 update, got %d", len(result.ToUpdate))
	}
	if result.ToUpdate[0].Module == nil || *result.ToUpdate[0].Module != "forms" {
		t.Fatalf("expected module patch to forms, got %v", result.ToUpdate[0].Module)
	}
}

func TestReconcileRejectsBlankKey(t *testing.T) {
	reconciler := NewReconciler()
	_, err := reconciler.Reconcile(uuid.New(), testLanguages(), nil, []Row{{Key: "   "}})
	if !errors.Is(err, ErrRowKeyRequired) {
		t.Fatalf("expected ErrRowKeyRequired, got %v", err)
	}
}

func TestReconcileRequiresProject(t *testing.T) {
	reconciler := NewReconciler()
	_, err := reconciler.Reconcile(uuid.Nil, testLanguages(), nil, nil)
	if !errors.Is(err, ErrProjectRequired) {
		t.Fatalf("expected ErrProjectRequired, got %v", err)
	}
}
