package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/editor"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "node_", cfg.Canvas.NodeIDPrefix)
	assert.Equal(t, "edge_", cfg.Canvas.EdgeIDPrefix)
	assert.Equal(t, 250.0, cfg.Canvas.ChromeOffset.X)
	assert.Equal(t, 50.0, cfg.Canvas.ChromeOffset.Y)
	assert.Equal(t, "Hello World", cfg.Canvas.MenuLabel)
	assert.Len(t, cfg.Canvas.Blocks, 2)
	assert.False(t, cfg.EventFeed.Enabled)
}

func TestLoader_LoadJSON(t *testing.T) {
	path := writeFile(t, "flowcanvas.json", `{
		"canvas": {
			"node_id_prefix": "n",
			"blocks": [{"kind": "filter", "label": "Filter"}]
		},
		"server": {
			"listen_addr": ":9000",
			"read_timeout": "15s"
		}
	}`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "n", cfg.Canvas.NodeIDPrefix)
	assert.Equal(t, "edge_", cfg.Canvas.EdgeIDPrefix, "keys absent from the layer keep defaults")
	assert.Equal(t, []canvas.Block{{Kind: "filter", Label: "Filter"}}, cfg.Canvas.Blocks)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/ws", cfg.Server.WSPath)
}

func TestLoader_LoadYAML(t *testing.T) {
	path := writeFile(t, "flowcanvas.yaml", `
canvas:
  chrome_offset:
    x: 300
    y: 64
  menu_label: Actions
metrics:
  port: 9191
event_feed:
  enabled: true
  url: nats://nats:4222
  subject_prefix: studio.canvas
`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, OffsetConfig{X: 300, Y: 64}, cfg.Canvas.ChromeOffset)
	assert.Equal(t, "Actions", cfg.Canvas.MenuLabel)
	assert.Equal(t, 9191, cfg.Metrics.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.EventFeed.Enabled)
	assert.Equal(t, "nats://nats:4222", cfg.EventFeed.URL)
	assert.Equal(t, "studio.canvas", cfg.EventFeed.SubjectPrefix)
}

func TestLoader_LayersOverrideInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	prod := filepath.Join(dir, "prod.json")
	require.NoError(t, os.WriteFile(base, []byte("server:\n  listen_addr: \":7000\"\n  ws_path: /canvas\n"), 0600))
	require.NoError(t, os.WriteFile(prod, []byte(`{"server": {"listen_addr": ":8000"}}`), 0600))

	loader := NewLoader()
	loader.AddLayer(base)
	loader.AddLayer(prod)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.ListenAddr)
	assert.Equal(t, "/canvas", cfg.Server.WSPath)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("FLOWCANVAS_LISTEN_ADDR", ":6060")
	t.Setenv("FLOWCANVAS_METRICS_PORT", "9999")
	t.Setenv("FLOWCANVAS_NATS_URL", "nats://feed:4222")
	t.Setenv("FLOWCANVAS_EVENT_FEED_ENABLED", "true")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Server.ListenAddr)
	assert.Equal(t, 9999, cfg.Metrics.Port)
	assert.Equal(t, "nats://feed:4222", cfg.EventFeed.URL)
	assert.True(t, cfg.EventFeed.Enabled)
}

func TestLoader_EnvOverrideInvalid(t *testing.T) {
	t.Setenv("FLOWCANVAS_METRICS_PORT", "ninety")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLOWCANVAS_METRICS_PORT")
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"malformed json", "bad.json", `{"server": {`, "unclosed brackets"},
		{"bad duration", "dur.json", `{"server": {"read_timeout": "soon"}}`, "server.read_timeout"},
		{"bad yaml", "bad.yaml", "server: [unterminated", "parse YAML"},
		{"unsupported extension", "flowcanvas.toml", `listen_addr = ":1"`, "unsupported config file type"},
		{"fails validation", "invalid.json", `{"canvas": {"edge_id_prefix": "node_"}}`, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := NewLoader().LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoader_ValidationDisabled(t *testing.T) {
	path := writeFile(t, "invalid.json", `{"server": {"ws_path": "ws"}}`)

	loader := NewLoader()
	loader.EnableValidation(false)
	loader.AddLayer(path)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "ws", cfg.Server.WSPath)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty node prefix", func(c *Config) { c.Canvas.NodeIDPrefix = "" }},
		{"empty edge prefix", func(c *Config) { c.Canvas.EdgeIDPrefix = "" }},
		{"block without kind", func(c *Config) { c.Canvas.Blocks = []canvas.Block{{Label: "x"}} }},
		{"block without label", func(c *Config) { c.Canvas.Blocks = []canvas.Block{{Kind: "x"}} }},
		{"duplicate block", func(c *Config) {
			c.Canvas.Blocks = []canvas.Block{{Kind: "x", Label: "X"}, {Kind: "x", Label: "Y"}}
		}},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"zero message size", func(c *Config) { c.Server.MaxMessageBytes = 0 }},
		{"rate without burst", func(c *Config) { c.Server.EventBurst = 0 }},
		{"metrics port range", func(c *Config) { c.Metrics.Port = 70000 }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"feed without url", func(c *Config) { c.EventFeed.Enabled = true; c.EventFeed.URL = "" }},
		{"feed wildcard prefix", func(c *Config) { c.EventFeed.Enabled = true; c.EventFeed.SubjectPrefix = "canvas.>" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_DisabledSectionsIgnored(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Port = 0
	cfg.EventFeed.SubjectPrefix = ""
	assert.NoError(t, cfg.Validate())
}

func TestConfig_EditorOptions(t *testing.T) {
	cfg := Default()
	cfg.Canvas.ChromeOffset = OffsetConfig{X: 10, Y: 20}
	cfg.Canvas.FallbackLabel = "Unknown"
	cfg.Canvas.Blocks = []canvas.Block{{Kind: "filter", Label: "Filter"}}

	opts := cfg.EditorOptions()
	assert.Equal(t, 10.0, opts.ChromeOffset.X)
	assert.Equal(t, 20.0, opts.ChromeOffset.Y)
	assert.Equal(t, "Filter", opts.Catalog.Label("filter"))
	assert.Equal(t, "Unknown", opts.Catalog.Label("blockA"))

	ed := editor.New(opts)
	assert.Equal(t, []canvas.Block{{Kind: "filter", Label: "Filter"}}, ed.Palette())
}

func TestValidateJSONDepth(t *testing.T) {
	assert.NoError(t, validateJSONDepth([]byte(`{"a": "}}]]", "b": [1, {"c": "\"{"}]}`)))

	deep := strings.Repeat("[", maxNesting+1) + strings.Repeat("]", maxNesting+1)
	assert.Error(t, validateJSONDepth([]byte(deep)))
	assert.Error(t, validateJSONDepth([]byte(`{"a": 1}}`)))
}

func TestValidateConfigPath(t *testing.T) {
	assert.Error(t, validateConfigPath(""))
	assert.Error(t, validateConfigPath("../../etc/passwd.json"))
	assert.Error(t, validateConfigPath("config.ini"))
	assert.NoError(t, validateConfigPath("configs/flowcanvas.yml"))
}

func TestValidateEnvVar(t *testing.T) {
	assert.NoError(t, validateEnvVar("K", "value"))
	assert.Error(t, validateEnvVar("K", "a\x00b"))
	assert.Error(t, validateEnvVar("K", strings.Repeat("x", maxEnvVarLen+1)))
}
