package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "scrape.csv", c.Source)
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, 30, c.HTTPTimeoutSec)
	assert.Equal(t, "contains_dock", c.CountColumn)
	assert.Equal(t, "dock", c.SortColumn)
	assert.Equal(t, 256, c.MaxViews)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	c := &Global{Source: "https://example.com/homes.csv", Delimiter: ";", HTTPTimeoutSec: 5, MaxViews: 8}
	require.NoError(t, Save(c, p))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "source: https://example.com/homes.csv")

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/homes.csv", got.Source)
	assert.Equal(t, 5, got.HTTPTimeoutSec)
	r, err := got.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ';', r)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOCKFINDER_SOURCE", "/data/listings.csv")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/listings.csv", c.Source)
}

func TestDelimiterRune(t *testing.T) {
	for in, want := range map[string]rune{"": ',', "tab": '\t', "|": '|'} {
		r, err := (&Global{Delimiter: in}).DelimiterRune()
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
	_, err := (&Global{Delimiter: "#"}).DelimiterRune()
	assert.Error(t, err)
}
