package catalogcmd

import (
	"testing"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/google/uuid"
)

func TestImportCatalogCommandValidate(t *testing.T) {
	valid := ImportCatalogCommand{
		ProjectID: uuid.New(),
		Rows:      []catalog.Row{{Key: "common.save"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}

	if err := (ImportCatalogCommand{Rows: valid.Rows}).Validate(); err == nil {
		t.Fatal("missing project id should fail validation")
	}
	if err := (ImportCatalogCommand{ProjectID: uuid.New()}).Validate(); err == nil {
		t.Fatal("missing rows should fail validation")
	}
}

func TestMergeCatalogCommandValidate(t *testing.T) {
	if err := (MergeCatalogCommand{ProjectID: uuid.New()}).Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
	if err := (MergeCatalogCommand{}).Validate(); err == nil {
		t.Fatal("missing project id should fail validation")
	}
}

func TestSyncValueCommandValidate(t *testing.T) {
	valid := SyncValueCommand{
		ProjectID: uuid.New(),
		EntryID:   uuid.New(),
		Lang:      "zh",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}

	missingEntry := valid
	missingEntry.EntryID = uuid.Nil
	if err := missingEntry.Validate(); err == nil {
		t.Fatal("missing entry id should fail validation")
	}

	missingLang := valid
	missingLang.Lang = ""
	if err := missingLang.Validate(); err == nil {
		t.Fatal("missing lang should fail validation")
	}
}
