package catalogcmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/google/uuid"
)

type stubResolver struct {
	languages []catalog.Language
}

func (s *stubResolver) Languages(context.Context, uuid.UUID) ([]catalog.Language, error) {
	return s.languages, nil
}

func testLanguages() []catalog.Language {
	return []catalog.Language{
		{Code: "en", Default: true},
		{Code: "zh"},
	}
}

func TestImportCatalogHandlerPersistsRows(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryEntryRepository()
	resolver := &stubResolver{languages: testLanguages()}
	service := catalog.NewService(repo, resolver)
	projectID := uuid.New()

	handler := NewImportCatalogHandler(service, nil)
	err := handler.Execute(ctx, ImportCatalogCommand{
		ProjectID: projectID,
		Rows: []catalog.Row{
			{Key: "common.save", Values: map[string]string{"en": "Save", "zh": "保存"}},
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if count, _ := repo.Count(ctx, projectID); count != 1 {
		t.Fatalf("expected 1 imported entry, got %d", count)
	}
}

func TestImportCatalogHandlerRejectsInvalidMessage(t *testing.T) {
	service := catalog.NewService(catalog.NewMemoryEntryRepository(), &stubResolver{languages: testLanguages()})
	handler := NewImportCatalogHandler(service, nil)

	if err := handler.Execute(context.Background(), ImportCatalogCommand{}); err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestMergeCatalogHandlerConsolidatesDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryEntryRepository()
	service := catalog.NewService(repo, &stubResolver{languages: testLanguages()})
	projectID := uuid.New()

	if _, err := repo.Insert(ctx, &catalog.Entry{
		ProjectID: projectID,
		Key:       "toolbar.save",
		Values:    map[string]string{"en": "Save", "zh": "保存"},
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	incomplete, err := repo.Insert(ctx, &catalog.Entry{
		ProjectID: projectID,
		Key:       "dialog.save",
		Values:    map[string]string{"en": "Save", "zh": ""},
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	handler := NewMergeCatalogHandler(service, nil)
	if err := handler.Execute(ctx, MergeCatalogCommand{ProjectID: projectID}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, incomplete.ID)
	if got.Values["zh"] != "保存" {
		t.Fatalf("merge not applied: %v", got.Values)
	}
}

func TestSyncValueHandlerPropagatesValue(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewMemoryEntryRepository()
	resolver := &stubResolver{languages: testLanguages()}
	projectID := uuid.New()

	edited, err := repo.Insert(ctx, &catalog.Entry{
		ProjectID: projectID,
		Key:       "toolbar.save",
		Values:    map[string]string{"en": "Save", "zh": "保存"},
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	sibling, err := repo.Insert(ctx, &catalog.Entry{
		ProjectID: projectID,
		Key:       "dialog.save",
		Values:    map[string]string{"en": "Save", "zh": ""},
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	handler := NewSyncValueHandler(catalog.NewSyncer(repo), resolver, nil)
	err = handler.Execute(ctx, SyncValueCommand{
		ProjectID: projectID,
		EntryID:   edited.ID,
		Lang:      "zh",
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got, _ := repo.GetByID(ctx, sibling.ID)
	if got.Values["zh"] != "保存" {
		t.Fatalf("value not propagated: %v", got.Values)
	}
}
