package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 8, s.Workers)
	assert.Equal(t, 8*time.Second, s.Timeout())
	assert.True(t, s.Backup)
	assert.False(t, s.RelativePaths)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch-icons.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"output_dir: /home/New_tab/icons\nworkers: 4\ntimeout_seconds: 15\nrelative_paths: true\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/home/New_tab/icons", s.OutputDir)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, 15*time.Second, s.Timeout())
	assert.True(t, s.RelativePaths)
	assert.True(t, s.Backup, "unset keys keep their defaults")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch-icons.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch-icons.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [not an int\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
