package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lamina-ui/lamina/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "lamina.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 4800

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"
)

// Config represents the complete lamina.yaml configuration.
type Config struct {
	// Name is the project name, used in log output and page titles.
	Name string `yaml:"name,omitempty"`

	// Server contains preview server configuration.
	Server ServerConfig `yaml:"server,omitempty"`

	// Protocol contains patch-stream configuration.
	Protocol ProtocolConfig `yaml:"protocol,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log,omitempty"`

	// Metrics contains metrics exposition configuration.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `yaml:"port,omitempty"`

	// Static is a directory of static files to serve alongside the
	// preview, empty to disable.
	Static string `yaml:"static,omitempty"`
}

// ProtocolConfig contains patch-stream settings.
type ProtocolConfig struct {
	// MaxFrameBytes caps the size of one encoded patch frame.
	MaxFrameBytes int `yaml:"maxFrameBytes,omitempty"`

	// PingInterval is the websocket keepalive interval (e.g. "30s").
	PingInterval string `yaml:"pingInterval,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig contains metrics exposition settings.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	Enabled bool `yaml:"enabled,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Protocol: ProtocolConfig{
			MaxFrameBytes: 65535,
			PingInterval:  "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from the specified directory, looking for
// lamina.yaml there and in parent directories. A missing file is not an
// error: defaults apply.
func Load(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E300").
				WithDetail("No lamina.yaml found at " + path).
				WithSuggestion("Run 'lamina init' or create lamina.yaml manually")
		}
		return nil, errors.New("E301").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E301").
			WithDetail("Failed to parse lamina.yaml: " + err.Error()).
			WithSuggestion("Check that lamina.yaml is valid YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E301").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E301").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// find walks from dir toward the filesystem root looking for lamina.yaml.
func find(dir string) (string, bool) {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Protocol.MaxFrameBytes == 0 {
		c.Protocol.MaxFrameBytes = 65535
	}
	if c.Protocol.PingInterval == "" {
		c.Protocol.PingInterval = "30s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// validate rejects values outside their allowed range.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E302").
			WithDetail("server.port must be between 1 and 65535")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E302").
			WithDetail("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E302").
			WithDetail("log.format must be text or json")
	}
	if c.Protocol.MaxFrameBytes < 0 {
		return errors.New("E302").
			WithDetail("protocol.maxFrameBytes must not be negative")
	}
	return nil
}
