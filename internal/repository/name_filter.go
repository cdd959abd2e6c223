package repository

import "strings"

// NameFilter restricts a directory listing to users whose first or last name
// contains Search, ignoring case.  The zero value matches every row.
type NameFilter struct {
	Search string
}

// NewNameFilter keeps the raw query term as given, whitespace included.  Only
// the empty term yields a filter that matches everything.
func NewNameFilter(raw string) NameFilter {
	return NameFilter{Search: raw}
}

func (f NameFilter) Empty() bool { return f.Search == "" }

// Clause renders the filter as a SQL predicate and its arguments.  LIKE
// wildcards in the term are escaped with MySQL's default backslash escape so
// the term is matched literally.
func (f NameFilter) Clause() (string, []any) {
	if f.Empty() {
		return "1=1", nil
	}
	pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
	return `(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)`, []any{pattern, pattern}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
