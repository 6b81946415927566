package catalog

import "strings"

// SortOrder selects ascending or descending listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	// OrderUpdatedAt is the default list ordering; combined with the
	// completeness timestamp shift it surfaces fully translated entries
	// first.
	OrderUpdatedAt = "updated_at"
	OrderCreatedAt = "created_at"
	OrderKey       = "key"
)

// ListOptions captures pagination, ordering and keyword filtering for entry
// listings. A keyword matches the entry key or its default-language text.
type ListOptions struct {
	Keyword     string
	DefaultLang string
	OrderBy     string
	Order       SortOrder
	Limit       int
	Skip        int
}

func (o ListOptions) normalized() ListOptions {
	out := o
	out.Keyword = strings.TrimSpace(o.Keyword)
	if out.OrderBy == "" {
		out.OrderBy = OrderUpdatedAt
	}
	if out.Order != SortAsc {
		out.Order = SortDesc
	}
	if out.Limit <= 0 {
		out.Limit = 1000
	}
	if out.Skip < 0 {
		out.Skip = 0
	}
	return out
}

// matches reports whether an entry satisfies the keyword filter.
func (o ListOptions) matches(entry *Entry) bool {
	if o.Keyword == "" {
		return true
	}
	if strings.Contains(entry.Key, o.Keyword) {
		return true
	}
	if o.DefaultLang != "" && strings.Contains(entry.Value(o.DefaultLang), o.Keyword) {
		return true
	}
	return false
}
