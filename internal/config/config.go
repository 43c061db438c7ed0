// Package config loads weeklyreport settings from .weeklyreport/config.yaml.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the configuration directory
const ConfigDirName = ".weeklyreport"

// Config holds all weeklyreport configuration
type Config struct {
	Author      string       `yaml:"author"`
	TasksFile   string       `yaml:"tasks_file"`
	OutputDir   string       `yaml:"output_dir"`
	UseTaskFile *bool        `yaml:"use_task_file"`
	Interactive *bool        `yaml:"interactive"`
	TrackerURL  string       `yaml:"tracker_url"`
	Slides      SlidesConfig `yaml:"slides"`
}

// SlidesConfig holds layout settings for SVG slides
type SlidesConfig struct {
	CharsPerLine int `yaml:"chars_per_line"`
	MaxLines     int `yaml:"max_lines"`
}

// ErrConfigNotFound is returned when no config directory can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// UsesTaskFile reports whether the task file should be preferred over git history.
func (c *Config) UsesTaskFile() bool {
	return c.UseTaskFile == nil || *c.UseTaskFile
}

// IsInteractive reports whether prompting is allowed.
func (c *Config) IsInteractive() bool {
	return c.Interactive == nil || *c.Interactive
}

// Load reads config from .weeklyreport/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir locates the .weeklyreport directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.TasksFile == "" {
		return fmt.Errorf("%w: tasks_file must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.TrackerURL != "" {
		u, err := url.Parse(cfg.TrackerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: tracker_url must be an http(s) URL, got %q",
				ErrInvalidConfig, cfg.TrackerURL)
		}
	}
	if cfg.Slides.CharsPerLine < 10 {
		return fmt.Errorf("%w: slides.chars_per_line must be at least 10, got %d",
			ErrInvalidConfig, cfg.Slides.CharsPerLine)
	}
	if cfg.Slides.MaxLines <= 0 {
		return fmt.Errorf("%w: slides.max_lines must be positive, got %d",
			ErrInvalidConfig, cfg.Slides.MaxLines)
	}
	return nil
}

// SaveDefault writes the default configuration to .weeklyreport/config.yaml in workDir.
func SaveDefault(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	configDir := filepath.Join(absDir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# weeklyreport configuration\n# Command-line flags take precedence over these values.\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}
