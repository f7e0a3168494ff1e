// Package query holds pagination and sorting inputs shared by every list
// repository.
package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 10
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// OrderClause resolves SortBy through a whitelist of API field names to
// column names. Unknown fields fall back to defaultColumn.
func (f SortFilter) OrderClause(allowed map[string]string, defaultColumn string, defaultDesc bool) string {
	column, ok := allowed[f.SortBy]
	if !ok {
		column = defaultColumn
	}
	desc := defaultDesc
	if f.SortOrder != "" {
		desc = f.IsDescending()
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

type BaseFilter struct {
	PageFilter
	SortFilter
}
