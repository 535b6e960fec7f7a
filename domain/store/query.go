// Package store provides the option-based query model shared by every
// persisted aggregate.
package store

import (
	"fmt"
	"slices"
)

// Option refines a Query. Domain packages wrap these into typed options
// such as pipeline.WithInvestorID.
type Option func(Query) Query

// Query is the persistence-agnostic description of a lookup. Repositories
// translate it; nothing in the domain layer executes it.
type Query struct {
	conditions []Condition
	clauses    []Clause
	orders     []Order
	page       Page
}

// Build folds options into a Query, in order.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		if opt != nil {
			q = opt(q)
		}
	}
	return q
}

// Conditions returns the field conditions.
func (q Query) Conditions() []Condition { return slices.Clone(q.conditions) }

// Clauses returns the raw predicates.
func (q Query) Clauses() []Clause { return slices.Clone(q.clauses) }

// Orders returns the sort keys in priority order.
func (q Query) Orders() []Order { return slices.Clone(q.orders) }

// LimitValue returns the row limit; zero is unbounded.
func (q Query) LimitValue() int { return q.page.Limit }

// OffsetValue returns the number of rows skipped.
func (q Query) OffsetValue() int { return q.page.Offset }

type operator uint8

const (
	opEqual operator = iota
	opIn
)

// Condition compares a column with a value, or with a set of values.
type Condition struct {
	field string
	value any
	op    operator
}

// Field returns the column name.
func (c Condition) Field() string { return c.field }

// Value returns the operand; a slice for set conditions.
func (c Condition) Value() any { return c.value }

// In reports whether Value is a set.
func (c Condition) In() bool { return c.op == opIn }

func (c Condition) String() string {
	if c.In() {
		return fmt.Sprintf("%s IN %v", c.field, c.value)
	}
	return fmt.Sprintf("%s = %v", c.field, c.value)
}

// Clause is a parameterised SQL predicate with ? placeholders.
type Clause struct {
	sql  string
	args []any
}

// SQL returns the predicate text.
func (c Clause) SQL() string { return c.sql }

// Args returns the placeholder arguments.
func (c Clause) Args() []any { return slices.Clone(c.args) }

// Order is one sort key.
type Order struct {
	field     string
	ascending bool
}

// Field returns the column name.
func (o Order) Field() string { return o.field }

// Ascending is false for descending keys.
func (o Order) Ascending() bool { return o.ascending }

// Page bounds a result window.
type Page struct {
	Limit  int
	Offset int
}

// PageOf returns the window for a 1-based page number. Page numbers below
// one are treated as the first page.
func PageOf(number, size int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Limit: size, Offset: (number - 1) * size}
}

func where(c Condition) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, c)
		return q
	}
}

// WithCondition adds field = value.
func WithCondition(field string, value any) Option {
	return where(Condition{field: field, value: value, op: opEqual})
}

// WithConditionIn adds field IN (values).
func WithConditionIn(field string, values any) Option {
	return where(Condition{field: field, value: values, op: opIn})
}

// WithWhere adds a raw predicate. The SQL must be a constant; values travel
// as args.
func WithWhere(sql string, args ...any) Option {
	return func(q Query) Query {
		q.clauses = append(q.clauses, Clause{sql: sql, args: args})
		return q
	}
}

// WithID filters by primary key.
func WithID(id string) Option { return WithCondition("id", id) }

// WithIDIn filters by a set of primary keys.
func WithIDIn(ids []string) Option { return WithConditionIn("id", ids) }

// WithLimit caps the number of rows.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.page.Limit = n
		return q
	}
}

// WithOffset skips the first n rows.
func WithOffset(n int) Option {
	return func(q Query) Query {
		q.page.Offset = n
		return q
	}
}

// WithPage sets limit and offset together.
func WithPage(p Page) Option {
	return func(q Query) Query {
		q.page = p
		return q
	}
}

func orderBy(field string, ascending bool) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: ascending})
		return q
	}
}

// WithOrderAsc sorts ascending on field.
func WithOrderAsc(field string) Option { return orderBy(field, true) }

// WithOrderDesc sorts descending on field.
func WithOrderDesc(field string) Option { return orderBy(field, false) }
