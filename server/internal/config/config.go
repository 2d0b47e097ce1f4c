package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultPort            = 3000
	DefaultStaticDir       = "public"
	DefaultWSPath          = "/ws"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultSendBuffer      = 256
	DefaultMaxMessageBytes = 4096
)

// Config holds the server-side configuration parsed from the `server:` section
// of the config file.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// Port is the port the static files, REST API and WebSocket hub listen on.
	Port int `yaml:"port"`

	// StaticDir is served on "/" when it exists. The drawing client lives here.
	StaticDir string `yaml:"static_dir"`

	// WSPath is where the WebSocket hub is mounted.
	WSPath string `yaml:"ws_path"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// ShutdownTimeout bounds how long in-flight HTTP requests get on shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Hub tunes per-client limits of the sync hub.
	Hub HubConfig `yaml:"hub"`
}

// HubConfig holds per-client resource limits.
type HubConfig struct {
	// SendBuffer is the outbound message queue depth per client. A client
	// whose queue fills up is disconnected.
	SendBuffer int `yaml:"send_buffer"`

	// MaxMessageBytes is the read limit applied to every inbound frame.
	MaxMessageBytes int64 `yaml:"max_message_bytes"`
}

// envOverrides are the settings that may come from the process environment.
// Unset variables leave the file value untouched.
type envOverrides struct {
	Port      int    `envconfig:"PORT"`
	StaticDir string `envconfig:"STATIC_DIR"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
}

// Level returns the slog level named by LogLevel.
// validate guarantees the name is known.
func (s ServerConfig) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load reads and parses the config file at path, returning the server
// configuration. An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("server config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			StaticDir:       DefaultStaticDir,
			WSPath:          DefaultWSPath,
			LogLevel:        DefaultLogLevel,
			ShutdownTimeout: DefaultShutdownTimeout,
			Hub: HubConfig{
				SendBuffer:      DefaultSendBuffer,
				MaxMessageBytes: DefaultMaxMessageBytes,
			},
		},
	}
}

// applyEnv overlays PORT, STATIC_DIR and LOG_LEVEL onto cfg.
func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.StaticDir != "" {
		cfg.Server.StaticDir = env.StaticDir
	}
	if env.LogLevel != "" {
		cfg.Server.LogLevel = env.LogLevel
	}
	return nil
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range [1, 65535]", s.Port)
	}
	if !strings.HasPrefix(s.WSPath, "/") || s.WSPath == "/" {
		return fmt.Errorf("server.ws_path %q must start with / and not be the root", s.WSPath)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", s.LogLevel)
	}
	if s.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	if s.Hub.SendBuffer <= 0 {
		return fmt.Errorf("server.hub.send_buffer must be positive")
	}
	if s.Hub.MaxMessageBytes <= 0 {
		return fmt.Errorf("server.hub.max_message_bytes must be positive")
	}
	return nil
}
