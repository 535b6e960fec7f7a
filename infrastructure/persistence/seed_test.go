package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/account"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f, err := DefaultFixture()
	require.NoError(t, err)

	first, err := Seed(ctx, db, f)
	require.NoError(t, err)
	_, err = Seed(ctx, db, f)
	require.NoError(t, err)

	n, err := NewInvestorStore(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(first.Investors), n)

	n, err = NewStartupStore(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(first.Startups), n)

	admins, err := NewProfileStore(db).Count(ctx, account.WithRole(account.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
}

func TestSeed_RollsBackOnBadRole(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	f, err := ParseFixture(strings.NewReader(`
profiles:
  - id: a
    email: a@example.com
    role: FOUNDER
  - id: b
    email: b@example.com
    role: WIZARD
`))
	require.NoError(t, err)

	_, err = Seed(ctx, db, f)
	require.Error(t, err)

	n, err := NewProfileStore(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestParseFixture_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseFixture(strings.NewReader("profiles:\n  - id: a\n    nickname: x\n"))
	assert.Error(t, err)
}

func TestListEncoding(t *testing.T) {
	assert.Equal(t, ",FinTech,Series A,", encodeList([]string{" FinTech ", "", "Series A"}))
	assert.Equal(t, "", encodeList(nil))
	assert.Equal(t, []string{"fintech", "series a"}, decodeList(",fintech,series a,"))
	assert.Nil(t, decodeList(""))
}
