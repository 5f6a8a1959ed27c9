package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Apply adds every predicate to db as an ANDed WHERE condition.
func Apply(db *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		switch p.Kind {
		case MatchContains:
			s, _ := p.Value.(string)
			db = db.Where(clause.Expr{
				SQL:  "? ILIKE ?",
				Vars: []interface{}{clause.Column{Name: p.Column}, "%" + escapeLike(s) + "%"},
			})
		default:
			db = db.Where(clause.Eq{Column: clause.Column{Name: p.Column}, Value: p.Value})
		}
	}
	return db
}

// Scope wraps Apply for use with db.Scopes.
func Scope(preds []Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Apply(db, preds)
	}
}

// Page limits db to the rows of req.
func Page(req PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Limit)
	}
}
