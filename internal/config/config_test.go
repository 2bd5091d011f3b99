package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "data", cfg.DataRoot)
	assert.Contains(t, cfg.TimestampFormats, EpochFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing data root", func(c *Config) { c.DataRoot = "" }, "DataRoot: cannot be blank"},
		{"extension without dot", func(c *Config) { c.IntegerExtensions = []string{"csv"} }, "must start with a dot"},
		{"no integer extension", func(c *Config) { c.IntegerExtensions = nil }, "cannot be blank"},
		{"overlapping extensions", func(c *Config) { c.StringExtensions = []string{".CSV"} }, "both integer and string"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"empty timestamp format", func(c *Config) { c.TimestampFormats = []string{""} }, "TimestampFormats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKindOf(t *testing.T) {
	cfg := NewDefaultConfig()

	kind, ok := cfg.KindOf("data/tw/alice/followers.csv")
	assert.True(t, ok)
	assert.Equal(t, model.KindInteger, kind)

	kind, ok = cfg.KindOf("data/tw/alice/notes.JOURNAL")
	assert.True(t, ok)
	assert.Equal(t, model.KindString, kind)

	_, ok = cfg.KindOf("data/tw/alice/profile.json")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Setenv("TALLY_TEST_ROOT", "/srv/stats")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_root: ${TALLY_TEST_ROOT}
integer_extensions: [".csv", ".count"]
timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/stats", cfg.DataRoot)
	assert.Equal(t, []string{".csv", ".count"}, cfg.IntegerExtensions)
	assert.Equal(t, []string{".journal"}, cfg.StringExtensions, "unset keys keep their defaults")
	assert.Equal(t, "UTC", cfg.Location().String())
	assert.Equal(t, "/srv/stats/graphs.txt", cfg.GraphListPath())
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
