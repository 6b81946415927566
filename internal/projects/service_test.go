package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/google/uuid"
)

func newTestService(t *testing.T) (Service, *MemoryProjectRepository, *catalog.MemoryEntryRepository) {
	t.Helper()
	repo := NewMemoryProjectRepository()
	entries := catalog.NewMemoryEntryRepository()
	svc := NewService(repo, entries, WithPortAllocator(func() int { return 7042 }))
	return svc, repo, entries
}

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	project, err := svc.Create(ctx, CreateProjectRequest{Name: "console"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if project.Prefix != DefaultPrefix {
		t.Fatalf("expected default prefix, got %q", project.Prefix)
	}
	if project.Port != 7042 {
		t.Fatalf("expected allocated port, got %d", project.Port)
	}
	if len(project.Languages) != 2 {
		t.Fatalf("expected the default language pair, got %v", project.Languages)
	}
	defaultLang, ok := project.DefaultLanguage()
	if !ok || defaultLang.Code != "zh" {
		t.Fatalf("expected zh as default language, got %v", defaultLang)
	}
}

func TestCreateKeepsExplicitSettings(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	project, err := svc.Create(ctx, CreateProjectRequest{
		Name:   "console",
		Prefix: "@app",
		Port:   8100,
		Languages: []catalog.Language{
			{Code: "en", Default: true},
			{Code: "fr", FileName: "fr-FR"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if project.Prefix != "@app" || project.Port != 8100 {
		t.Fatalf("explicit settings overridden: %+v", project)
	}
	if project.Languages[0].FileName != "en" {
		t.Fatalf("missing file name should fall back to the code, got %q", project.Languages[0].FileName)
	}
	if project.Languages[1].FileName != "fr-FR" {
		t.Fatalf("explicit file name overridden, got %q", project.Languages[1].FileName)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.Create(ctx, CreateProjectRequest{Name: "console"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateProjectRequest{Name: "console"}); !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}

func TestCreateRejectsLanguagesWithoutDefault(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateProjectRequest{
		Name:      "console",
		Languages: []catalog.Language{{Code: "en"}, {Code: "fr"}},
	})
	if !errors.Is(err, ErrDefaultLanguageRequired) {
		t.Fatalf("expected ErrDefaultLanguageRequired, got %v", err)
	}
}

func TestUpdateChangesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	project, err := svc.Create(ctx, CreateProjectRequest{Name: "console", Owner: "ada"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrefix := "@web"
	updated, err := svc.Update(ctx, UpdateProjectRequest{
		ID:     project.ID,
		Prefix: &newPrefix,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Prefix != "@web" {
		t.Fatalf("prefix not updated: %q", updated.Prefix)
	}
	if updated.Owner != "ada" || updated.Port != project.Port {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestDeleteReturnsRemovedProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	project, _ := svc.Create(ctx, CreateProjectRequest{Name: "console"})
	removed, err := svc.Delete(ctx, project.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed.Name != "console" {
		t.Fatalf("unexpected removed project: %+v", removed)
	}
	if _, err := svc.Get(ctx, project.ID); !IsNotFound(err) {
		t.Fatalf("project should be gone, got %v", err)
	}
}

func TestSurveyCountsEntriesAndSettings(t *testing.T) {
	ctx := context.Background()
	svc, _, entries := newTestService(t)

	project, err := svc.Create(ctx, CreateProjectRequest{
		Name:     "console",
		Modules:  []string{"common", "forms"},
		Specials: []string{"enterprise"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := entries.Insert(ctx, &catalog.Entry{
		ProjectID: project.ID,
		Key:       "common.save",
		Values:    map[string]string{"zh": "保存", "en": "Save"},
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	if _, err := entries.Insert(ctx, &catalog.Entry{
		ProjectID: project.ID,
		Key:       "common.cancel",
		Values:    map[string]string{"zh": "取消"},
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	survey, err := svc.Survey(ctx, project.ID)
	if err != nil {
		t.Fatalf("survey failed: %v", err)
	}
	if survey.Entries != 2 || survey.Languages != 2 || survey.Modules != 2 || survey.Specials != 1 {
		t.Fatalf("unexpected counters: %+v", survey)
	}
	if survey.Progress.TranslateTotal != 4 || survey.Progress.TranslateFinish != 3 {
		t.Fatalf("unexpected progress: %+v", survey.Progress)
	}
}

func TestLanguagesResolvesProjectConfiguration(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	project, _ := svc.Create(ctx, CreateProjectRequest{Name: "console"})
	languages, err := svc.Languages(ctx, project.ID)
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	if len(languages) != 2 {
		t.Fatalf("unexpected languages: %v", languages)
	}

	if _, err := svc.Languages(ctx, uuid.New()); !IsNotFound(err) {
		t.Fatalf("expected not found for unknown project, got %v", err)
	}
}
