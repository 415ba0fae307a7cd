package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// freshLoader returns a loader backed by its own viper instance so tests do
// not leak state through the global one.
func freshLoader() *Loader {
	return &Loader{v: viper.New()}
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	cfg, err := freshLoader().Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Stages.Rotate.MaxDegrees, cfg.Stages.Rotate.MaxDegrees)
	require.Equal(t, "tesseract", cfg.OCR.TesseractPath)
}

func TestLoadWithFile_OverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "smudge.yaml")
	content := `
seed: 42
count: 7
stages:
  rotate:
    max_degrees: 2.5
  perspective:
    enabled: true
    jitter:
      min: 0.01
      max: 0.03
ocr:
  enabled: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := freshLoader().LoadWithFile(configPath)
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, 7, cfg.Count)
	require.InDelta(t, 2.5, cfg.Stages.Rotate.MaxDegrees, 1e-9)
	require.True(t, cfg.Stages.Perspective.Enabled)
	require.InDelta(t, 0.01, cfg.Stages.Perspective.Jitter.Min, 1e-9)
	require.False(t, cfg.OCR.Enabled)
	// Untouched defaults survive partial files.
	require.True(t, cfg.Stages.GaussianNoise.Enabled)
}

func TestLoadWithFile_MissingFile(t *testing.T) {
	_, err := freshLoader().LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestLoadWithFile_InvalidRangesRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "smudge.yaml")
	content := `
stages:
  resize:
    factor:
      min: 1.5
      max: 0.66
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	_, err := freshLoader().LoadWithFile(configPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "resize factor")
}

func TestLoadWithFile_UnknownStageRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "smudge.yaml")
	// A misspelled stage name must fail loudly instead of being dropped.
	content := `
stages:
  gausian_noise:
    enabled: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	_, err := freshLoader().LoadWithFile(configPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown stage "gausian_noise"`)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	require.NotEmpty(t, paths)
	require.Equal(t, ".", paths[0])
	require.Contains(t, paths, "/etc/smudge")
}
