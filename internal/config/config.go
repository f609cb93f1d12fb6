package config

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"

	"github.com/vango-dev/refkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "refkit.json"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log handler format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "refkit"
)

// Config represents the complete refkit.json configuration.
type Config struct {
	// Debug enables hook order validation on every owner.
	Debug bool `json:"debug,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath is the path to the loaded config file.
	configPath string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// MetricsConfig configures merged ref metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty"`

	// Labels are constant labels added to every metric.
	Labels map[string]string `json:"labels,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load loads refkit.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	cfg, err := LoadFile(configPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads and validates the config at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigRead).
			WithDetail("Failed to read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveTo writes the config to path as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.format %q is not one of text, json", c.Log.Format)
	}

	// Every metric shares the namespace_subsystem_ prefix, so checking one
	// name covers them all.
	fqName := prometheus.BuildFQName(c.Metrics.Namespace, c.Metrics.Subsystem, "merged_refs_built_total")
	if !model.IsValidMetricName(model.LabelValue(fqName)) {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("metrics.namespace %q and metrics.subsystem %q produce the invalid metric name %q",
				c.Metrics.Namespace, c.Metrics.Subsystem, fqName).
			WithSuggestion("Use only letters, digits, underscores and colons, and do not start with a digit")
	}
	for _, name := range slices.Sorted(maps.Keys(c.Metrics.Labels)) {
		if !model.LabelName(name).IsValid() || strings.HasPrefix(name, model.ReservedLabelPrefix) {
			return errors.New(errors.CodeConfigInvalid).
				WithDetailf("metrics.labels key %q is not a valid Prometheus label name", name)
		}
	}
	return nil
}

// LogLevel returns the configured slog level.
// Invalid values fall back to slog.LevelInfo.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// NewLogger builds a slog.Logger writing to w with the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if strings.ToLower(c.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
