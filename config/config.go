package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/viewport"
)

// Config represents the complete application configuration
type Config struct {
	Canvas    CanvasConfig    `json:"canvas"`
	Server    ServerConfig    `json:"server"`
	Metrics   MetricsConfig   `json:"metrics"`
	EventFeed EventFeedConfig `json:"event_feed"`
}

// CanvasConfig configures every editor instance
type CanvasConfig struct {
	ChromeOffset  OffsetConfig   `json:"chrome_offset"`  // Sidebar width and header height in pixels
	NodeIDPrefix  string         `json:"node_id_prefix"` // e.g., "node_"
	EdgeIDPrefix  string         `json:"edge_id_prefix"` // e.g., "edge_"
	FallbackLabel string         `json:"fallback_label"` // Label for kinds outside the palette
	MenuLabel     string         `json:"menu_label"`     // Context menu placeholder content
	Blocks        []canvas.Block `json:"blocks"`         // Palette in display order
}

// OffsetConfig is a screen-space pixel offset
type OffsetConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ServerConfig configures the websocket session server
type ServerConfig struct {
	ListenAddr      string        `json:"listen_addr"`
	WSPath          string        `json:"ws_path"`
	ReadTimeout     time.Duration `json:"read_timeout"`      // Idle limit per connection
	MaxMessageBytes int64         `json:"max_message_bytes"` // Inbound envelope size limit
	EventsPerSecond float64       `json:"events_per_second"` // Per-session inbound rate, 0 = unlimited
	EventBurst      int           `json:"event_burst"`
	AllowedOrigins  []string      `json:"allowed_origins,omitempty"` // Empty allows any origin
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port"`
	Path    string `json:"path"`
}

// EventFeedConfig configures publishing editor events to NATS
type EventFeedConfig struct {
	Enabled       bool   `json:"enabled"`
	URL           string `json:"url"`
	SubjectPrefix string `json:"subject_prefix"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			ChromeOffset:  OffsetConfig{X: editor.DefaultChromeOffset.X, Y: editor.DefaultChromeOffset.Y},
			NodeIDPrefix:  canvas.NodeIDPrefix,
			EdgeIDPrefix:  canvas.EdgeIDPrefix,
			FallbackLabel: canvas.DefaultFallbackLabel,
			MenuLabel:     editor.DefaultMenuLabel,
			Blocks:        canvas.DefaultCatalog().Blocks(),
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			WSPath:          "/ws",
			ReadTimeout:     60 * time.Second,
			MaxMessageBytes: 64 << 10,
			EventsPerSecond: 200,
			EventBurst:      50,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		EventFeed: EventFeedConfig{
			Enabled:       false,
			URL:           "nats://localhost:4222",
			SubjectPrefix: "flowcanvas.events",
		},
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Canvas.NodeIDPrefix == "" {
		return errors.New("canvas.node_id_prefix is required")
	}
	if c.Canvas.EdgeIDPrefix == "" {
		return errors.New("canvas.edge_id_prefix is required")
	}
	if c.Canvas.NodeIDPrefix == c.Canvas.EdgeIDPrefix {
		return fmt.Errorf("canvas.node_id_prefix and canvas.edge_id_prefix must differ (both %q)", c.Canvas.NodeIDPrefix)
	}

	seen := make(map[canvas.BlockKind]bool, len(c.Canvas.Blocks))
	for i, b := range c.Canvas.Blocks {
		if b.Kind == "" {
			return fmt.Errorf("canvas.blocks[%d]: kind is required", i)
		}
		if b.Label == "" {
			return fmt.Errorf("canvas.blocks[%d]: label is required for kind %s", i, b.Kind)
		}
		if seen[b.Kind] {
			return fmt.Errorf("canvas.blocks[%d]: duplicate kind %s", i, b.Kind)
		}
		seen[b.Kind] = true
	}

	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	if !strings.HasPrefix(c.Server.WSPath, "/") {
		return fmt.Errorf("server.ws_path must start with '/': %q", c.Server.WSPath)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive: %s", c.Server.ReadTimeout)
	}
	if c.Server.MaxMessageBytes <= 0 {
		return fmt.Errorf("server.max_message_bytes must be positive: %d", c.Server.MaxMessageBytes)
	}
	if c.Server.EventsPerSecond < 0 || c.Server.EventBurst < 0 {
		return errors.New("server.events_per_second and server.event_burst cannot be negative")
	}
	if c.Server.EventsPerSecond > 0 && c.Server.EventBurst == 0 {
		return errors.New("server.event_burst must be positive when events_per_second is set")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port out of range: %d", c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with '/': %q", c.Metrics.Path)
		}
	}

	if c.EventFeed.Enabled {
		if c.EventFeed.URL == "" {
			return errors.New("event_feed.url is required when the event feed is enabled")
		}
		if !isValidSubjectPrefix(c.EventFeed.SubjectPrefix) {
			return fmt.Errorf("event_feed.subject_prefix %q is not a valid NATS subject", c.EventFeed.SubjectPrefix)
		}
	}

	return nil
}

// isValidSubjectPrefix checks for a non-empty NATS subject without wildcards
func isValidSubjectPrefix(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, " \t*>")
}

// Catalog builds the block catalog described by the canvas section
func (c *Config) Catalog() *canvas.Catalog {
	return canvas.NewCatalog(c.Canvas.FallbackLabel, c.Canvas.Blocks...)
}

// EditorOptions converts the canvas section into editor options
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		Catalog:      c.Catalog(),
		ChromeOffset: viewport.Point{X: c.Canvas.ChromeOffset.X, Y: c.Canvas.ChromeOffset.Y},
		NodeIDPrefix: c.Canvas.NodeIDPrefix,
		EdgeIDPrefix: c.Canvas.EdgeIDPrefix,
		MenuLabel:    c.Canvas.MenuLabel,
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader with validation enabled
func NewLoader() *Loader {
	return &Loader{
		layers:     []string{},
		validation: true,
		envPrefix:  "FLOWCANVAS",
	}
}

// AddLayer adds a configuration file layer; later layers win
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file on top of the defaults
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	for _, path := range l.layers {
		rawConfig, err := l.loadRaw(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		cfg, err = l.mergeFromMap(cfg, rawConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	return cfg, nil
}

// loadRaw loads a JSON or YAML file as a map
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}

	var rawConfig map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rawConfig); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		if err := validateJSONDepth(data); err != nil {
			return nil, fmt.Errorf("invalid JSON structure: %w", err)
		}
		if err := json.Unmarshal(data, &rawConfig); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	}

	if err := l.parseDurations(rawConfig); err != nil {
		return nil, err
	}
	return rawConfig, nil
}

// mergeFromMap merges configuration from a raw map, only overriding fields present in the map
func (l *Loader) mergeFromMap(base *Config, override map[string]any) (*Config, error) {
	if override == nil {
		return base, nil
	}

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return nil, err
	}

	mergedJSON, err := json.Marshal(deepMergeMaps(baseMap, override))
	if err != nil {
		return nil, err
	}

	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}

	return result
}

// parseDurations converts duration strings to nanoseconds for json unmarshaling
func (l *Loader) parseDurations(data map[string]any) error {
	server, ok := data["server"].(map[string]any)
	if !ok {
		return nil
	}
	if s, ok := server["read_timeout"].(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("server.read_timeout: %w", err)
		}
		server["read_timeout"] = d.Nanoseconds()
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	lookup := func(name string) (string, bool, error) {
		key := l.envPrefix + "_" + name
		val := os.Getenv(key)
		if val == "" {
			return "", false, nil
		}
		if err := validateEnvVar(key, val); err != nil {
			return "", false, err
		}
		return val, true, nil
	}

	if val, ok, err := lookup("LISTEN_ADDR"); err != nil {
		return err
	} else if ok {
		cfg.Server.ListenAddr = val
	}

	if val, ok, err := lookup("METRICS_PORT"); err != nil {
		return err
	} else if ok {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s_METRICS_PORT: %w", l.envPrefix, err)
		}
		cfg.Metrics.Port = port
	}

	if val, ok, err := lookup("NATS_URL"); err != nil {
		return err
	} else if ok {
		cfg.EventFeed.URL = val
	}

	if val, ok, err := lookup("EVENT_FEED_ENABLED"); err != nil {
		return err
	} else if ok {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%s_EVENT_FEED_ENABLED: %w", l.envPrefix, err)
		}
		cfg.EventFeed.Enabled = enabled
	}

	return nil
}
