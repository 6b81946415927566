package projects

import (
	"time"

	"github.com/goliatone/go-localize/internal/catalog"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Defaults applied when a project is created without explicit settings.
const (
	DefaultPrefix   = "@i18n"
	DefaultPortBase = 7000
	DefaultPortSpan = 1000
)

// Project is one localized application: its language configuration, module
// partitions, and delivery settings.
type Project struct {
	bun.BaseModel `bun:"table:i18n_projects,alias:p"`

	ID        uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Name      string             `bun:"name,notnull,unique" json:"name"`
	Owner     string             `bun:"owner" json:"owner"`
	Prefix    string             `bun:"prefix" json:"prefix"`
	Port      int                `bun:"port" json:"port"`
	Versions  []string           `bun:"versions,type:jsonb" json:"versions,omitempty"`
	Modules   []string           `bun:"modules,type:jsonb" json:"modules,omitempty"`
	Languages []catalog.Language `bun:"languages,type:jsonb" json:"languages"`
	Specials  []string           `bun:"specials,type:jsonb" json:"specials,omitempty"`
	CreatedAt time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// DefaultLanguage returns the project's canonical source language.
func (p *Project) DefaultLanguage() (catalog.Language, bool) {
	if p == nil {
		return catalog.Language{}, false
	}
	return catalog.DefaultLanguage(p.Languages)
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Versions = append([]string(nil), p.Versions...)
	copied.Modules = append([]string(nil), p.Modules...)
	copied.Specials = append([]string(nil), p.Specials...)
	copied.Languages = append([]catalog.Language(nil), p.Languages...)
	return &copied
}

// DefaultLanguages is the language configuration seeded into projects created
// without one.
func DefaultLanguages() []catalog.Language {
	return []catalog.Language{
		{Code: "zh", Label: "简体中文", FileName: "zh-CN", Display: true, Default: true},
		{Code: "en", Label: "English", FileName: "en-US", Display: true},
	}
}

// Survey aggregates a project's dashboard counters.
type Survey struct {
	Progress  catalog.Progress
	Entries   int
	Languages int
	Modules   int
	Specials  int
}
