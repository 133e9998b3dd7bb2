package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.ConfirmDelete)
	assert.Equal(t, model.GroupNone, cfg.GroupByValue())
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server_url: http://tasks.local:9000\nconfirm_delete: false\ngroup_by: tags\nseed: false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://tasks.local:9000", cfg.ServerURL)
	assert.False(t, cfg.ConfirmDelete)
	assert.False(t, cfg.Seed)
	assert.Equal(t, model.GroupTags, cfg.GroupByValue())
	assert.NotEmpty(t, cfg.LogLevel, "unset keys keep their defaults")
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("group_by: color\nlog_level: LOUD\n"), 0644))

	_, err := LoadFrom(path)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("group_by: [unclosed"), 0644))

	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.GroupBy = "Priority"
	cfg.LogLevel = "DEBUG"

	require.NoError(t, cfg.SaveTo(path))
	loaded, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, model.GroupPriority, loaded.GroupByValue())
	assert.Equal(t, "DEBUG", loaded.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty server url", func(c *Config) { c.ServerURL = "" }, false},
		{"ftp server url", func(c *Config) { c.ServerURL = "ftp://x" }, true},
		{"hostless server url", func(c *Config) { c.ServerURL = "http://" }, true},
		{"bad grouping", func(c *Config) { c.GroupBy = "Color" }, true},
		{"lowercase level", func(c *Config) { c.LogLevel = "warn" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().SaveTo(path))

	t.Setenv("TASKDECK_SEED", "false")
	t.Setenv("TASKDECK_SERVER", "http://other:9000")
	t.Setenv("TASKDECK_GROUP_BY", "Favorites")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.False(t, cfg.Seed)
	assert.Equal(t, "http://other:9000", cfg.ServerURL)
	assert.Equal(t, model.GroupFavorites, cfg.GroupByValue())
	assert.True(t, cfg.ConfirmDelete, "unset variables keep file values")
}

func TestLoadFrom_MalformedEnvBoolKeepsFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: false\n"), 0644))
	t.Setenv("TASKDECK_SEED", "maybe")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, cfg.Seed)
}

func TestUpdateFile_DoesNotPersistEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TASKDECK_SEED", "false")
	t.Setenv("TASKDECK_SERVER", "http://other:9000")

	require.NoError(t, UpdateFile(path, func(c *Config) { c.LogLevel = "DEBUG" }))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "other:9000")

	t.Setenv("TASKDECK_SEED", "")
	t.Setenv("TASKDECK_SERVER", "")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}
