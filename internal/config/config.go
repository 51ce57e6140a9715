package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/mathlive/internal/errors"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "mathlive.json"

	// DefaultPort is the default live preview port.
	DefaultPort = 5173

	// DefaultHost is the default live preview host.
	DefaultHost = "localhost"

	// DefaultPreset is the render preset used when none is configured.
	DefaultPreset = "display"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "mathlive"

	// DefaultPublishPrefix is the default key prefix for published snapshots.
	DefaultPublishPrefix = "snapshots/"
)

// configFileNames are the names Load looks for, in order.
var configFileNames = []string{ConfigFileName, "mathlive.yaml", "mathlive.yml"}

// Config represents a complete mathlive configuration file.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Publish PublishConfig `json:"publish" yaml:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig selects the render options of every pipeline.
// Preset is applied first; the other fields override it when set.
type RenderConfig struct {
	// Preset is "display" or "inline".
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`

	// Strict is "fail-on-error" or "permit-trusted-extensions".
	Strict string `json:"strict,omitempty" yaml:"strict,omitempty"`

	// DisplayMode is "block" or "inline".
	DisplayMode string `json:"displayMode,omitempty" yaml:"displayMode,omitempty"`

	Trust *bool `json:"trust,omitempty" yaml:"trust,omitempty"`

	// PositionUnit is "rune", "byte" or "utf16".
	PositionUnit string `json:"positionUnit,omitempty" yaml:"positionUnit,omitempty"`
}

// ServerConfig contains live preview server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Initial is the source text a new session starts with.
	Initial string `json:"initial,omitempty" yaml:"initial,omitempty"`

	// Sanitize filters untrusted markup before it is sent to the browser.
	Sanitize bool `json:"sanitize" yaml:"sanitize"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// File additionally writes JSON logs to this path.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// PublishConfig contains snapshot upload settings.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			Preset:       DefaultPreset,
			PositionUnit: pipeline.UnitRune.String(),
		},
		Server: ServerConfig{
			Host:     DefaultHost,
			Port:     DefaultPort,
			Initial:  `\frac{1}{2}`,
			Sanitize: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Publish: PublishConfig{
			Prefix: DefaultPublishPrefix,
		},
	}
}

// Find returns the path of the configuration file in dir, or "" if there
// is none.
func Find(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads configuration from the specified directory.
// Without a configuration file it returns the defaults.
func Load(dir string) (*Config, error) {
	path := Find(dir)
	if path == "" {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M120").
				WithDetail("No configuration file at " + path).
				Wrap(err)
		}
		return nil, errors.New("M120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("M120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithLocationFromError(path, data, err).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on its extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("M120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Render.Preset == "" {
		c.Render.Preset = DefaultPreset
	}
	if c.Render.PositionUnit == "" {
		c.Render.PositionUnit = pipeline.UnitRune.String()
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}

	if c.Publish.Prefix == "" {
		c.Publish.Prefix = DefaultPublishPrefix
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.RenderOptions(); err != nil {
		return err
	}
	if _, err := c.PositionUnit(); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("M122").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// RenderOptions resolves the render section into pipeline options.
func (c *Config) RenderOptions() (pipeline.RenderOptions, error) {
	preset := c.Render.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	opts, ok := pipeline.Preset(preset)
	if !ok {
		return opts, errors.New("M121").
			WithDetail("Unknown preset " + strconv.Quote(preset)).
			WithSuggestion(`Use "display" or "inline"`)
	}

	if c.Render.Strict != "" {
		s, err := pipeline.ParseStrictness(c.Render.Strict)
		if err != nil {
			return opts, errors.New("M121").
				Wrap(err).
				WithDetail(err.Error()).
				WithSuggestion(`Use "fail-on-error" or "permit-trusted-extensions"`)
		}
		opts.Strictness = s
	}

	if c.Render.DisplayMode != "" {
		d, err := pipeline.ParseDisplayMode(c.Render.DisplayMode)
		if err != nil {
			return opts, errors.New("M121").
				Wrap(err).
				WithDetail(err.Error()).
				WithSuggestion(`Use "block" or "inline"`)
		}
		opts.DisplayMode = d
	}

	if c.Render.Trust != nil {
		opts.Trust = *c.Render.Trust
	}

	return opts, nil
}

// PositionUnit resolves the unit engine positions are measured in.
func (c *Config) PositionUnit() (pipeline.PositionUnit, error) {
	u, err := pipeline.ParsePositionUnit(c.Render.PositionUnit)
	if err != nil {
		return u, errors.New("M121").
			Wrap(err).
			WithDetail(err.Error()).
			WithSuggestion(`Use "rune", "byte" or "utf16"`)
	}
	return u, nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, errors.New("M123").
			WithDetail("Unknown log level " + strconv.Quote(c.Log.Level)).
			Wrap(err)
	}
	return level, nil
}

// Address returns the host:port address of the live preview server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the live preview server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}
