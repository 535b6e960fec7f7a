package investmatch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/infrastructure/persistence"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := New(WithDataDir(""), WithLogger(quietLogger()))
	require.ErrorIs(t, err, ErrNoDatabase)
}

func TestNew_DataDirDefaults(t *testing.T) {
	dir := t.TempDir()

	client, err := New(WithDataDir(dir), WithSiteURL("http://app.test/"), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.FileExists(t, filepath.Join(dir, "investmatch.db"))
	assert.Equal(t, filepath.Join(dir, "storage"), client.FilesDir())
	assert.DirExists(t, client.FilesDir())
	assert.Equal(t, "http://app.test", client.SiteURL())
	require.NoError(t, client.Ping(context.Background()))
}

func TestClient_CloseTwice(t *testing.T) {
	client, err := New(WithDataDir(t.TempDir()), WithLogger(quietLogger()))
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), service.ErrClientClosed)
	assert.ErrorIs(t, client.Ping(context.Background()), service.ErrClientClosed)
}

func TestClient_SeedRefreshesDirectory(t *testing.T) {
	client, err := New(WithSQLite(filepath.Join(t.TempDir(), "im.db")), WithDataDir(t.TempDir()), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	before, err := client.Directory.SearchInvestors(ctx, directory.NewFilter())
	require.NoError(t, err)
	assert.Empty(t, before)

	f, err := persistence.DefaultFixture()
	require.NoError(t, err)
	_, err = client.Seed(ctx, f)
	require.NoError(t, err)

	after, err := client.Directory.SearchInvestors(ctx, directory.NewFilter())
	require.NoError(t, err)
	assert.Len(t, after, 3)
}

func TestClient_UnconfiguredCollaborators(t *testing.T) {
	client, err := New(WithDataDir(t.TempDir()), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	founder := account.NewActor("u-1", account.RoleFounder)

	_, err = client.Payments.CreateOrder(ctx, founder, 49900, "INR")
	assert.ErrorIs(t, err, errs.ErrUnavailable)

	_, err = client.Auth.SignIn(ctx, "someone@example.com", "secret")
	assert.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestNew_CreatesMissingDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	client, err := New(WithDataDir(dir), WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
