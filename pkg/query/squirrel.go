package query

import (
	sq "github.com/Masterminds/squirrel"
)

// Builder emits "?" placeholders; GORM's Raw rewrites them for the dialect.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Conditions renders preds as a squirrel AND for queries that are not built
// through GORM.
func Conditions(preds []Predicate) sq.And {
	and := make(sq.And, 0, len(preds))
	for _, p := range preds {
		switch p.Kind {
		case MatchContains:
			s, _ := p.Value.(string)
			and = append(and, sq.ILike{p.Column: "%" + escapeLike(s) + "%"})
		default:
			and = append(and, sq.Eq{p.Column: p.Value})
		}
	}
	return and
}

// WhereAll adds preds to b. With no predicates b is returned unchanged.
func WhereAll(b sq.SelectBuilder, preds []Predicate) sq.SelectBuilder {
	if len(preds) == 0 {
		return b
	}
	return b.Where(Conditions(preds))
}
