package prefs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutri-cli/internal/db"
	"github.com/saadjs/nutri-cli/internal/prefs"
	"github.com/saadjs/nutri-cli/internal/store"
)

func TestThemeDefaultsAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sqldb, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "nutri.db"))
	require.NoError(t, err)
	defer sqldb.Close()
	kv := store.NewKV(sqldb)

	theme, err := prefs.GetTheme(ctx, kv, "")
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeLight, theme)

	require.NoError(t, prefs.SetTheme(ctx, kv, theme.Toggle()))
	theme, err = prefs.GetTheme(ctx, kv, prefs.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeDark, theme)

	assert.Error(t, prefs.SetTheme(ctx, kv, "sepia"))
}

func TestParseTheme(t *testing.T) {
	t.Parallel()
	theme, err := prefs.ParseTheme(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeDark, theme)
	_, err = prefs.ParseTheme("blue")
	assert.Error(t, err)
}
