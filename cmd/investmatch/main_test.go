package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "stdio", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "investmatch version dev")
}

func TestLoadFixture(t *testing.T) {
	def, err := loadFixture("")
	require.NoError(t, err)
	assert.NotEmpty(t, def.Investors)

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("startups:\n  - founder_id: u-1\n    name: Solo\n"), 0o600))
	f, err := loadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.Startups, 1)
	assert.Equal(t, "Solo", f.Startups[0].Name)

	_, err = loadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyServeOverrides(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)

	cfg = applyServeOverrides(cfg, "127.0.0.1", 9999)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr())
}
