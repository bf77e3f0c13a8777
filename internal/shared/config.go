package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Viewer   ViewerConfig   `toml:"viewer"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// ViewerConfig contains the externally supplied viewer defaults.
//
// These seed the viewer's internal state on attach; user interaction
// overrides them until the next reconfiguration.
type ViewerConfig struct {
	Instrument    string `toml:"instrument"`
	ShowChords    bool   `toml:"show_chords"`
	ChordPosition string `toml:"chord_position"`
	Format        string `toml:"format"`
}

// DatabaseConfig contains song library connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second per client
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory if one exists.
//
// Missing files are not an error; explicit environment always wins.
func LoadEnv() {
	_ = godotenv.Load()
}

// applyEnv overlays CHORDSTAND_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("CHORDSTAND_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CHORDSTAND_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("CHORDSTAND_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CHORDSTAND_INSTRUMENT"); v != "" {
		c.Viewer.Instrument = v
	}
}
