package grid

import (
	"strings"

	apperrors "print-shop-system/pkg/errors"
)

type SortKey struct {
	Field      string
	Column     string
	Descending bool
}

// sortableColumns whitelists the grid fields a client may sort by and maps
// each to the qualified column used in SQL. Nothing outside this map ever
// reaches an ORDER BY clause.
var sortableColumns = map[string]string{
	"id":      "o.id",
	"log":     "o.log",
	"artlo":   "o.artlo",
	"cust":    "o.cust",
	"title":   "o.title",
	"prior":   "o.prior",
	"datin":   "o.datin",
	"dueout":  "o.dueout",
	"colorf":  "o.colorf",
	"print_n": "o.print_n",
	"logtype": "o.logtype",
	"rush":    "o.rush",
	"datout":  "o.datout",
}

// ParseSort turns signed sort tokens ("-dueout", "log") into SortKeys.
// Unknown fields are rejected, never silently dropped.
func ParseSort(tokens []string) ([]SortKey, error) {
	keys := make([]SortKey, 0, len(tokens))
	for _, tok := range tokens {
		field := tok
		desc := false
		if strings.HasPrefix(tok, "-") {
			field = tok[1:]
			desc = true
		} else if strings.HasPrefix(tok, "+") {
			field = tok[1:]
		}

		col, ok := sortableColumns[field]
		if !ok {
			return nil, apperrors.NewValidationError("sort", "unknown sort field %q", field)
		}
		keys = append(keys, SortKey{Field: field, Column: col, Descending: desc})
	}
	return keys, nil
}

// OrderByClauses renders the ORDER BY expressions for a sort, always ending
// with o.id ASC so equal-key rows keep a stable order across pages.
func OrderByClauses(keys []SortKey) []string {
	clauses := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		dir := " ASC"
		if k.Descending {
			dir = " DESC"
		}
		clauses = append(clauses, k.Column+dir)
	}
	return append(clauses, "o.id ASC")
}
