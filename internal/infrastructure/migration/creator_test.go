package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add quotes table", "add_quotes_table"},
		{"Add-Truck-Notes", "add_truck_notes"},
		{"ADD__referrer__index", "add_referrer_index"},
		{"  spaces  ", "spaces"},
		{"season rules v2!", "season_rules_v2"},
		{"___", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create trucks", "Fleet tables")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_trucks.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_trucks.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- 000001 create_trucks (up)")
	assert.Contains(t, string(up), "-- Fleet tables")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")

	second, err := CreateMigration(dir, "Add truck notes", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)

	noDesc, err := os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(noDesc), "-- \n")
}

func TestCreateMigration_ContinuesAfterHighestVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_seed.up.sql"), nil, 0o644))

	created, err := CreateMigration(dir, "next", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", created.Version)
}

func TestCreateMigration_InvalidName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_pricing.up.sql":   {},
		"000002_pricing.down.sql": {},
		"000001_base.up.sql":      {},
		"000010_late.up.sql":      {},
		"README.md":               {},
		"notes.sql":               {},
		"archive/000003_x.up.sql": {},
	}
	list, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []MigrationInfo{
		{Version: 1, Name: "base"},
		{Version: 2, Name: "pricing", HasDown: true},
		{Version: 10, Name: "late"},
	}, list)
}

func TestListMigrations_MissingDir(t *testing.T) {
	list, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmbeddedMigrations_Complete(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for i, m := range list {
		assert.Equal(t, uint(i+1), m.Version, "versions are contiguous")
		assert.True(t, m.HasDown, "migration %d has a down file", m.Version)
	}
}
