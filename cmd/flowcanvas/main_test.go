package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.ConfigPaths)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NoError(t, validateFlags(cfg))
}

func TestParseFlags_Values(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), []string{
		"--config", "base.yaml, prod.json",
		"--log-format", "text",
		"--debug",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"base.yaml", "prod.json"}, cfg.ConfigPaths)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_Env(t *testing.T) {
	t.Setenv("FLOWCANVAS_LOG_LEVEL", "warn")
	t.Setenv("FLOWCANVAS_CONFIG", "flowcanvas.yaml")

	cfg, err := parseFlags(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"flowcanvas.yaml"}, cfg.ConfigPaths)
}

func TestValidateFlags(t *testing.T) {
	assert.Error(t, validateFlags(&CLIConfig{LogLevel: "loud", LogFormat: "json"}))
	assert.Error(t, validateFlags(&CLIConfig{LogLevel: "info", LogFormat: "xml"}))
	assert.Error(t, validateFlags(&CLIConfig{LogLevel: "info", LogFormat: "json", ConfigPaths: []string{"missing.yaml"}}))
	assert.NoError(t, validateFlags(&CLIConfig{ShowVersion: true, LogLevel: "loud"}))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("visible", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, appName, entry["service"])
	assert.Equal(t, Version, entry["version"])
	assert.Equal(t, "value", entry["key"])
}

func TestLoadConfig_Layers(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	require.NoError(t, os.WriteFile(base, []byte("metrics:\n  enabled: false\n"), 0600))

	cfg, err := loadConfig([]string{base})
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	cfg, err = loadConfig(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestRun_Validate(t *testing.T) {
	assert.NoError(t, run([]string{"--validate", "--log-format", "text"}))
}
