package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_CollectsOptions(t *testing.T) {
	q := Build(
		WithID("abc"),
		WithConditionIn("stage", []string{"to_contact", "closed"}),
		WithWhere("name LIKE ?", "%acme%"),
		WithOrderDesc("created_at"),
		WithLimit(10),
		WithOffset(20),
	)

	conds := q.Conditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, "id = abc", conds[0].String())
	assert.True(t, conds[1].In())

	clauses := q.Clauses()
	assert.Len(t, clauses, 1)
	assert.Equal(t, "name LIKE ?", clauses[0].SQL())
	assert.Equal(t, []any{"%acme%"}, clauses[0].Args())

	orders := q.Orders()
	assert.Len(t, orders, 1)
	assert.False(t, orders[0].Ascending())

	assert.Equal(t, 10, q.LimitValue())
	assert.Equal(t, 20, q.OffsetValue())
}

func TestQuery_AccessorsReturnCopies(t *testing.T) {
	q := Build(WithID("a"))
	conds := q.Conditions()
	conds[0] = Condition{field: "other"}

	assert.Equal(t, "id", q.Conditions()[0].Field())
}

func TestWithPage(t *testing.T) {
	q := Build(WithPage(PageOf(3, 25)))
	assert.Equal(t, 25, q.LimitValue())
	assert.Equal(t, 50, q.OffsetValue())

	assert.Equal(t, Page{Limit: 10}, PageOf(0, 10))
}

func TestBuild_SkipsNilOptions(t *testing.T) {
	q := Build(nil, WithLimit(5))
	assert.Equal(t, 5, q.LimitValue())
}
