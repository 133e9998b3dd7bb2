package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	ServerURL     string `yaml:"server_url" json:"server_url"`         // API used by the CLI subcommands
	Listen        string `yaml:"listen" json:"listen"`                 // Address for `taskdeck serve`
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete
	GroupBy       string `yaml:"group_by" json:"group_by"`             // Initial grouping: None, Tags, Priority, Favorites
	Seed          bool   `yaml:"seed" json:"seed"`                     // Start with the demo tasks

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.taskdeck
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// DefaultPath returns ~/.taskdeck/config.yaml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Defaults returns the built-in settings, without environment overrides
func Defaults() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "taskdeck.log")
	}

	return &Config{
		ServerURL:     "http://localhost:8080",
		Listen:        ":8080",
		ConfirmDelete: true,
		GroupBy:       string(model.GroupNone),
		Seed:          true,
		LogLevel:      "INFO",
		LogFile:       logPath,
		LogConsole:    false,
	}
}

// DefaultConfig returns default settings with TASKDECK_* overrides applied
func DefaultConfig() *Config {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

// applyEnv overrides fields from TASKDECK_* environment variables
func (c *Config) applyEnv() {
	c.ServerURL = getEnv("TASKDECK_SERVER", c.ServerURL)
	c.Listen = getEnv("TASKDECK_LISTEN", c.Listen)
	c.GroupBy = getEnv("TASKDECK_GROUP_BY", c.GroupBy)
	c.LogLevel = getEnv("TASKDECK_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("TASKDECK_LOG_FILE", c.LogFile)
	c.ConfirmDelete = getEnvBool("TASKDECK_CONFIRM_DELETE", c.ConfirmDelete)
	c.Seed = getEnvBool("TASKDECK_SEED", c.Seed)
	c.LogConsole = getEnvBool("TASKDECK_LOG_CONSOLE", c.LogConsole)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses a boolean environment variable, keeping defaultValue when unset or malformed
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logger.Warn("Ignoring malformed boolean environment variable", logger.F("key", key), logger.F("value", value))
		return defaultValue
	}
	return b
}

// Load loads config from ~/.taskdeck/config.yaml
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path and applies environment overrides.
// Defaults are used when the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// readFile returns the defaults overlaid with the file at path, ignoring the environment
func readFile(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Update applies fn to the stored config file and writes it back
func Update(fn func(*Config)) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return UpdateFile(path, fn)
}

// UpdateFile applies fn to the config stored at path and writes it back.
// Environment overrides are not written to the file.
func UpdateFile(path string, fn func(*Config)) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	fn(cfg)
	return cfg.SaveTo(path)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("server_url", c.ServerURL, validServerURL),
		criterio.Run("group_by", c.GroupBy, validGroupBy),
		criterio.Run("log_level", c.LogLevel, validLogLevel),
	)
}

// GroupByValue returns the parsed grouping, falling back to None
func (c *Config) GroupByValue() model.GroupBy {
	g, ok := model.ParseGroupBy(c.GroupBy)
	if !ok {
		return model.GroupNone
	}
	return g
}

func validServerURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validGroupBy(s string) error {
	if _, ok := model.ParseGroupBy(s); !ok {
		return fmt.Errorf("unknown grouping %q (want None, Tags, Priority or Favorites)", s)
	}
	return nil
}

func validLogLevel(s string) error {
	if !logger.ValidLevel(s) {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}
