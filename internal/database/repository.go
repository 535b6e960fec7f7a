package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/store"
)

// ErrNotFound is errs.ErrNotFound, re-exported for store implementations.
var ErrNotFound = errs.ErrNotFound

// EntityMapper converts between a domain value D and its row model E.
type EntityMapper[D any, E any] interface {
	ToDomain(entity E) D
	ToModel(domain D) E
}

// Repository implements the read side of store.Store for one model, plus
// filtered deletes. Writes with conflict handling live in the concrete
// stores.
type Repository[D any, E any] struct {
	db     Database
	mapper EntityMapper[D, E]
	label  string
}

// NewRepository creates a Repository. label names the entity in errors.
func NewRepository[D any, E any](db Database, mapper EntityMapper[D, E], label string) Repository[D, E] {
	return Repository[D, E]{db: db, mapper: mapper, label: label}
}

func (r Repository[D, E]) table(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx).Model(new(E))
}

func (r Repository[D, E]) wrap(op string, err error) error {
	return fmt.Errorf("%s %s: %w", op, r.label, err)
}

// Find returns every row matching options, mapped to domain values.
func (r Repository[D, E]) Find(ctx context.Context, options ...store.Option) ([]D, error) {
	var rows []E
	if err := ApplyOptions(r.table(ctx), options...).Find(&rows).Error; err != nil {
		return nil, r.wrap("find", err)
	}
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.ToDomain(row))
	}
	return out, nil
}

// FindOne returns the first matching row, or an error wrapping ErrNotFound.
func (r Repository[D, E]) FindOne(ctx context.Context, options ...store.Option) (D, error) {
	var (
		row  E
		zero D
	)
	err := ApplyOptions(r.db.Session(ctx), options...).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return zero, fmt.Errorf("%w: %s", ErrNotFound, r.label)
	case err != nil:
		return zero, r.wrap("find one", err)
	}
	return r.mapper.ToDomain(row), nil
}

// Exists reports whether any row matches options.
func (r Repository[D, E]) Exists(ctx context.Context, options ...store.Option) (bool, error) {
	n, err := r.count(ctx, ApplyConditions(r.table(ctx), options...).Limit(1))
	return n > 0, err
}

// Count returns the number of rows matching options.
func (r Repository[D, E]) Count(ctx context.Context, options ...store.Option) (int64, error) {
	return r.count(ctx, ApplyConditions(r.table(ctx), options...))
}

func (r Repository[D, E]) count(_ context.Context, q *gorm.DB) (int64, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

// DeleteBy removes the rows matching options and returns how many went.
func (r Repository[D, E]) DeleteBy(ctx context.Context, options ...store.Option) (int64, error) {
	res := ApplyConditions(r.db.Session(ctx), options...).Delete(new(E))
	if res.Error != nil {
		return 0, r.wrap("delete", res.Error)
	}
	return res.RowsAffected, nil
}

// DB returns a GORM session bound to ctx.
func (r Repository[D, E]) DB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx)
}

// Mapper returns the entity mapper.
func (r Repository[D, E]) Mapper() EntityMapper[D, E] {
	return r.mapper
}
