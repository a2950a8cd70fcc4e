package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownSourceKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Kind = "bogus"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresPathForFileSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Kind = "file"
	cfg.Source.Path = ""
	assert.Error(t, cfg.Validate())

	cfg.Source.Path = "bits.txt"
	cfg.Source.Format = "ascii"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownFileFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Kind = "file"
	cfg.Source.Path = "bits.txt"
	cfg.Source.Format = "wat"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reporting.OutputDir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateDelegatesToBatteryParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Battery.N = 0
	assert.Error(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Source.MasterSeed = 99
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), loaded.Source.MasterSeed)
	assert.Equal(t, cfg.Battery.N, loaded.Battery.N)
}

func TestLoadFallsBackToDefaultWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Battery.N, cfg.Battery.N)
}
