// Package query turns raw list-endpoint query strings into database
// predicates and pagination metadata.
package query

import (
	"net/url"
	"strings"
)

// MatcherKind decides how a query parameter is compared with its column.
type MatcherKind int

const (
	// MatchExact compares the column to the raw text value.
	MatchExact MatcherKind = iota
	// MatchContains is a case-insensitive substring match.
	MatchContains
	// MatchBoolean compares the column to true when the value is exactly
	// "true" and to false for anything else.
	MatchBoolean
)

func (k MatcherKind) String() string {
	switch k {
	case MatchExact:
		return "exact_text"
	case MatchContains:
		return "substring_text_case_insensitive"
	case MatchBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Field binds one accepted query parameter to a column.
type Field struct {
	Param  string
	Column string
	Kind   MatcherKind
}

// FieldTable is the closed set of filterable fields of one endpoint.
// Order matters: predicates come out in table order.
type FieldTable []Field

// Predicate is a single column condition. Value is a string for text
// matchers and a bool for MatchBoolean.
type Predicate struct {
	Column string
	Kind   MatcherKind
	Value  any
}

// BuildPredicates walks table and emits one predicate per field whose
// parameter is present and non-empty. Parameters not in table are ignored.
func BuildPredicates(params map[string]string, table FieldTable) []Predicate {
	preds := make([]Predicate, 0, len(table))
	for _, f := range table {
		raw, ok := params[f.Param]
		if !ok || raw == "" {
			continue
		}

		p := Predicate{Column: f.Column, Kind: f.Kind}
		switch f.Kind {
		case MatchBoolean:
			p.Value = raw == "true"
		default:
			p.Value = raw
		}
		preds = append(preds, p)
	}
	return preds
}

// ParamsFromValues keeps the first value of every key.
func ParamsFromValues(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

// escapeLike makes value match literally inside an ILIKE pattern.
func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
