package main

import (
	"context"
	"fmt"
	"log"

	localize "github.com/goliatone/go-localize"
	"github.com/goliatone/go-localize/internal/audit"
	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/goliatone/go-localize/internal/guard"
	"github.com/goliatone/go-localize/internal/identity"
	"github.com/goliatone/go-localize/internal/projects"
)

// Walks the catalog lifecycle end to end: seed an account, create a project,
// import rows under the guard, propagate an edited value, and dump the audit
// trail collected along the way.
func main() {
	ctx := context.Background()

	cfg := localize.DefaultConfig()
	cfg.Features.Logger = true

	module, err := localize.New(cfg)
	if err != nil {
		log.Fatalf("new localize module: %v", err)
	}
	defer module.Close()

	if _, err := module.Users().Create(ctx, &identity.User{
		Name:     "Ada Lovelace",
		Username: "ada",
		Password: "analytical",
		Role:     localize.RoleDeveloper,
	}); err != nil {
		log.Fatalf("seed account: %v", err)
	}

	project, err := module.Projects().Create(ctx, projects.CreateProjectRequest{
		Name:    "storefront",
		Owner:   "ada",
		Modules: []string{"checkout", "search"},
	})
	if err != nil {
		log.Fatalf("create project: %v", err)
	}
	fmt.Printf("project %q serving on port %d with prefix %s\n", project.Name, project.Port, project.Prefix)

	callerCtx := guard.WithCredentials(ctx, guard.Credentials{Username: "ada", Password: "analytical"})
	callerCtx = guard.WithClientIP(callerCtx, "192.0.2.10")

	imported, err := module.Guard().Wrap(callerCtx, audit.OpImportCatalog, localize.RoleDeveloper, func(actionCtx context.Context) (any, error) {
		return module.Catalog().Import(actionCtx, catalog.ImportRequest{
			ProjectID: project.ID,
			Rows: []catalog.Row{
				{Key: "checkout.submit", Module: "checkout", Values: map[string]string{"zh": "提交订单", "en": "Submit order"}},
				{Key: "checkout.cancel", Module: "checkout", Values: map[string]string{"zh": "取消"}},
				{Key: "search.placeholder", Module: "search", Values: map[string]string{"zh": "搜索商品"}},
			},
		})
	}, guard.WithProject(project.ID))
	if err != nil {
		log.Fatalf("guarded import: %v", err)
	}
	result := imported.(*catalog.ImportResult)
	fmt.Printf("imported %d rows (%d updated)\n", result.Created, result.Updated)

	pending, err := module.Catalog().Export(ctx, catalog.ExportRequest{ProjectID: project.ID})
	if err != nil {
		log.Fatalf("export untranslated: %v", err)
	}
	for _, row := range pending {
		fmt.Printf("pending translation: %s\n", row.Key)
	}

	progress, err := module.Catalog().Progress(ctx, project.ID)
	if err != nil {
		log.Fatalf("progress: %v", err)
	}
	fmt.Printf("progress: %d/%d values translated (%.1f%%)\n", progress.TranslateFinish, progress.TranslateTotal, progress.Percent)

	module.Audit().Close()
	records, _, err := module.AuditLog().List(ctx, audit.ListOptions{})
	if err != nil {
		log.Fatalf("list audit records: %v", err)
	}
	for _, record := range records {
		fmt.Printf("audit: %s by %s from %s -> %s\n", record.Operation, record.Username, record.IP, record.Result)
	}
}
