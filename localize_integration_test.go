package localize_test

import (
	"context"
	"errors"
	"testing"

	localize "github.com/goliatone/go-localize"
	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/guard"
	"github.com/goliatone/go-localize/internal/identity"
	"github.com/goliatone/go-localize/internal/projects"
	"github.com/goliatone/go-localize/pkg/interfaces"
)

func newModule(t *testing.T) *localize.Module {
	t.Helper()
	module, err := localize.New(localize.DefaultConfig())
	if err != nil {
		t.Fatalf("new localize module: %v", err)
	}
	t.Cleanup(func() {
		if err := module.Close(); err != nil {
			t.Fatalf("close module: %v", err)
		}
	})
	return module
}

func seedAccount(t *testing.T, module *localize.Module, username, password string, role localize.Role) {
	t.Helper()
	if _, err := module.Users().Create(context.Background(), &identity.User{
		Name:     username,
		Username: username,
		Password: password,
		Role:     role,
	}); err != nil {
		t.Fatalf("seed account %q: %v", username, err)
	}
}

func TestModule_GuardedCatalogLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	module := newModule(t)
	seedAccount(t, module, "dev", "dev-pass", localize.RoleDeveloper)

	project, err := module.Projects().Create(ctx, projects.CreateProjectRequest{
		Name:    "storefront",
		Owner:   "dev",
		Modules: []string{"checkout"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Prefix != projects.DefaultPrefix {
		t.Fatalf("expected default prefix, got %q", project.Prefix)
	}

	devCtx := guard.WithCredentials(ctx, guard.Credentials{Username: "dev", Password: "dev-pass"})
	devCtx = guard.WithClientIP(devCtx, "10.0.0.7")

	created, err := module.Guard().Wrap(devCtx, audit.OpAddKey, localize.RoleDeveloper, func(actionCtx context.Context) (any, error) {
		return module.Catalog().Create(actionCtx, catalog.CreateEntryRequest{
			ProjectID: project.ID,
			Key:       "checkout.submit",
			Module:    "checkout",
			Title:     "提交订单",
		})
	}, guard.WithProject(project.ID))
	if err != nil {
		t.Fatalf("guarded create failed: %v", err)
	}
	entry := created.(*catalog.Entry)
	if entry.Values["zh"] != "提交订单" {
		t.Fatalf("default language not seeded: %v", entry.Values)
	}
	if _, ok := entry.Values["en"]; !ok {
		t.Fatalf("configured languages not seeded: %v", entry.Values)
	}

	if _, err := module.Catalog().UpdateValue(ctx, catalog.UpdateValueRequest{
		ProjectID: project.ID,
		EntryID:   entry.ID,
		Lang:      "en",
		Value:     "Submit order",
	}); err != nil {
		t.Fatalf("update value: %v", err)
	}

	progress, err := module.Catalog().Progress(ctx, project.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.TranslateTotal != 2 || progress.TranslateFinish != 2 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	module.Audit().Close()
	records, total, err := module.AuditLog().List(ctx, audit.ListOptions{Operation: audit.OpAddKey})
	if err != nil {
		t.Fatalf("list audit records: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected exactly one audit record, got %d", total)
	}
	record := records[0]
	if record.Username != "dev" || record.IP != "10.0.0.7" || record.Result != audit.ResultSuccess {
		t.Fatalf("unexpected audit record: %+v", record)
	}
	if record.ProjectID != project.ID {
		t.Fatalf("audit record missing project: %+v", record)
	}
}

func TestModule_GuardRejectsInsufficientRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	module := newModule(t)
	seedAccount(t, module, "guest", "guest-pass", localize.RoleVisitor)

	guestCtx := guard.WithCredentials(ctx, guard.Credentials{Username: "guest", Password: "guest-pass"})
	_, err := module.Guard().Wrap(guestCtx, audit.OpDeleteProject, localize.RoleAdmin, func(context.Context) (any, error) {
		t.Fatal("action must not run for rejected callers")
		return nil, nil
	})

	var forbidden *guard.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}

	module.Audit().Close()
	records, total, err := module.AuditLog().List(ctx, audit.ListOptions{})
	if err != nil {
		t.Fatalf("list audit records: %v", err)
	}
	if total != 1 {
		t.Fatalf("rejections must still audit, got %d records", total)
	}
	if records[0].Result != audit.ResultFail || records[0].Reason == "" {
		t.Fatalf("unexpected rejection record: %+v", records[0])
	}
}

func TestModule_BunProviderPersistsAcrossServices(t *testing.T) {
	ctx := context.Background()

	cfg := localize.DefaultConfig()
	cfg.Storage.Provider = localize.StorageProviderBun
	cfg.Storage.DSN = "file:localize_module_it?mode=memory&cache=shared"

	module, err := localize.New(cfg)
	if err != nil {
		t.Fatalf("new localize module: %v", err)
	}
	t.Cleanup(func() {
		if err := module.Close(); err != nil {
			t.Fatalf("close module: %v", err)
		}
	})

	if err := module.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seedAccount(t, module, "admin", "admin-pass", localize.RoleAdmin)

	project, err := module.Projects().Create(ctx, projects.CreateProjectRequest{Name: "warehouse"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	result, err := module.Catalog().Import(ctx, catalog.ImportRequest{
		ProjectID: project.ID,
		Rows: []catalog.Row{
			{Key: "shelf.label", Values: map[string]string{"zh": "货架", "en": "Shelf"}},
			{Key: "dock.label", Values: map[string]string{"zh": "月台"}},
		},
	})
	if err != nil {
		t.Fatalf("import rows: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected 2 created rows, got %d", result.Created)
	}

	pending, err := module.Catalog().Export(ctx, catalog.ExportRequest{ProjectID: project.ID})
	if err != nil {
		t.Fatalf("export untranslated: %v", err)
	}
	if len(pending) != 1 || pending[0].Key != "dock.label" {
		t.Fatalf("expected only the untranslated row, got %+v", pending)
	}

	actor, err := module.Authenticator().Verify(ctx, "admin", "admin-pass")
	if err != nil {
		t.Fatalf("verify credentials: %v", err)
	}
	if actor == nil || actor.Role != interfaces.RoleAdmin {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}
