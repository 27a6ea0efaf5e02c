package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingBridge   = errors.New("bridge address is required")
	ErrMissingUsername = errors.New("bridge username is required")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Defaults
const (
	DefaultTimeout   = 5 * time.Second
	DefaultRateLimit = 10.0
	DefaultLogLevel  = "info"
)

// Config is the process configuration. It is read once at startup and not
// modified afterwards.
type Config struct {
	Bridge   BridgeConfig   `yaml:"bridge"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	API      APIConfig      `yaml:"api"`
	Simulate bool           `yaml:"simulate"` // Use the in-memory bridge
}

// BridgeConfig holds the Hue bridge identity and call limits
type BridgeConfig struct {
	Address   string   `yaml:"address"`
	Username  string   `yaml:"username"`
	Timeout   Duration `yaml:"timeout"`    // Per-call deadline
	RateLimit float64  `yaml:"rate_limit"` // Requests per second to the bridge
}

// DatabaseConfig holds the SQLite location
type DatabaseConfig struct {
	Path    string `yaml:"path"`    // Empty means ~/.config/huemcp/huemcp.db
	Profile string `yaml:"profile"` // Stored profile to activate, created on first use
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// APIConfig holds REST server settings
type APIConfig struct {
	Address string `yaml:"address"` // Overrides the address stored in the profile
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration. A bare integer
// is read as seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!int" {
		var seconds int64
		if err := value.Decode(&seconds); err != nil {
			return err
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bridge.Timeout <= 0 {
		c.Bridge.Timeout = Duration(DefaultTimeout)
	}
	if c.Bridge.RateLimit <= 0 {
		c.Bridge.RateLimit = DefaultRateLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks that a real bridge can be addressed. A simulated bridge
// needs no identity.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Simulate {
		return nil
	}
	if strings.TrimSpace(c.Bridge.Address) == "" {
		return ErrMissingBridge
	}
	if strings.TrimSpace(c.Bridge.Username) == "" {
		return ErrMissingUsername
	}
	return nil
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnvVars expands ${VAR} and ${VAR:default}
func expandEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if val := os.Getenv(parts[1]); val != "" {
			return val
		}
		return parts[2]
	})
}
