package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/investmatch/investmatch/domain/store"
)

// ApplyOptions translates store options into a filtered, sorted and paged
// GORM statement.
func ApplyOptions(db *gorm.DB, options ...store.Option) *gorm.DB {
	q := store.Build(options...)

	db = where(db, q)
	for _, o := range q.Orders() {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field()}, Desc: !o.Ascending()})
	}
	if n := q.LimitValue(); n > 0 {
		db = db.Limit(n)
	}
	if n := q.OffsetValue(); n > 0 {
		db = db.Offset(n)
	}
	return db
}

// ApplyConditions applies only the filters, for counts, updates and deletes.
func ApplyConditions(db *gorm.DB, options ...store.Option) *gorm.DB {
	return where(db, store.Build(options...))
}

// where renders every condition and clause as one conjunction. An empty IN
// set matches nothing.
func where(db *gorm.DB, q store.Query) *gorm.DB {
	preds := Predicates(q)
	if len(preds) == 0 {
		return db
	}
	sql, args, err := preds.ToSql()
	if err != nil {
		_ = db.AddError(fmt.Errorf("render query: %w", err))
		return db
	}
	return db.Where(sql, args...)
}

// Predicates returns the filters of q as a squirrel conjunction.
func Predicates(q store.Query) sq.And {
	var preds sq.And
	for _, c := range q.Conditions() {
		preds = append(preds, sq.Eq{c.Field(): c.Value()})
	}
	for _, c := range q.Clauses() {
		preds = append(preds, sq.Expr(c.SQL(), c.Args()...))
	}
	return preds
}
