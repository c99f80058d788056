package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Log      LogConfig      `toml:"log"`
	Batch    BatchConfig    `toml:"batch"`
}

// ServerConfig contains HTTP server settings.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Host            string     `toml:"host"`
	Port            int        `toml:"port"`
	DocsURL         string     `toml:"docs_url"`
	ReadTimeout     int        `toml:"read_timeout"`
	WriteTimeout    int        `toml:"write_timeout"`
	ShutdownTimeout int        `toml:"shutdown_timeout"`
	CORS            CORSConfig `toml:"cors"`
}

// CORSConfig mirrors the cross-origin policy applied by the server middleware.
type CORSConfig struct {
	AllowedOrigins   []string `toml:"allowed_origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
}

// ProviderConfig contains settings for the upstream catalog client.
type ProviderConfig struct {
	BaseURL           string  `toml:"base_url"`
	Timeout           int     `toml:"timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	UserAgent         string  `toml:"user_agent"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// BatchConfig contains defaults for the batch resolution command.
type BatchConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
	OutputDir string  `toml:"output_dir"`
}

// Addr returns the host:port pair the server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports whether the configuration can be used to start the service.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("%w: provider base_url is empty", ErrInvalidConfig)
	}
	if c.Provider.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: provider requests_per_second must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadEnv loads variables from a dotenv file (when it exists) into the process
// environment and applies them on top of config.
//
// Variables already present in the environment win over the file.
func LoadEnv(config *Config, path string) error {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	return ApplyEnv(config, os.LookupEnv)
}

// ApplyEnv overrides config values with SAAVNX_* variables resolved through lookup.
//
// PORT is honoured when SAAVNX_PORT is unset so the server runs on common PaaS hosts.
func ApplyEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("SAAVNX_HOST"); ok && v != "" {
		config.Server.Host = v
	}

	port, ok := lookup("SAAVNX_PORT")
	if !ok || port == "" {
		port, ok = lookup("PORT")
	}
	if ok && port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%w: invalid port %q", ErrInvalidConfig, port)
		}
		config.Server.Port = p
	}

	if v, ok := lookup("SAAVNX_DOCS_URL"); ok && v != "" {
		config.Server.DocsURL = v
	}
	if v, ok := lookup("SAAVNX_PROVIDER_URL"); ok && v != "" {
		config.Provider.BaseURL = v
	}
	if v, ok := lookup("SAAVNX_LOG_LEVEL"); ok && v != "" {
		config.Log.Level = v
	}

	return config.Validate()
}
