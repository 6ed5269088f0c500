package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Report formats accepted by report.format and --format.
const (
	FormatConsole  = "console"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all tool settings for pagesmith. Page configs are a
// different thing and live in pkg/pageconfig.
type Config struct {
	Report     ReportConfig     `mapstructure:"report"`
	Slots      SlotsConfig      `mapstructure:"slots"`
	Structure  StructureConfig  `mapstructure:"structure"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

// ReportConfig controls how command results are printed
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// SlotsConfig controls placeholder discovery
type SlotsConfig struct {
	// Attribute is the marker attribute naming an image's slot
	Attribute string `mapstructure:"attribute"`
}

// StructureConfig toggles the advisory markup structure checks
type StructureConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ClassifierConfig points at an optional signature manifest merged over the
// embedded one
type ClassifierConfig struct {
	SignaturesFile string `mapstructure:"signatures_file"`
}

var defaultConfig = Config{
	Report:    ReportConfig{Format: FormatConsole},
	Slots:     SlotsConfig{Attribute: "data-slot"},
	Structure: StructureConfig{Enabled: true},
}

// Default returns the built-in settings.
func Default() Config {
	return defaultConfig
}

// LoadConfig loads settings from pagesmith.yaml (working directory, $HOME,
// then $PAGESMITH_HOME/config) and PAGESMITH_* environment variables.
func LoadConfig() (*Config, error) {
	return load("")
}

// LoadConfigFile loads settings from an explicit file. Unlike the search
// path, a missing or unreadable file is an error.
func LoadConfigFile(path string) (*Config, error) {
	return load(path)
}

func load(explicit string) (*Config, error) {
	v := viper.New()

	v.SetDefault("report.format", defaultConfig.Report.Format)
	v.SetDefault("slots.attribute", defaultConfig.Slots.Attribute)
	v.SetDefault("structure.enabled", defaultConfig.Structure.Enabled)
	v.SetDefault("classifier.signatures_file", defaultConfig.Classifier.SignaturesFile)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("pagesmith")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		if home, err := GetPagesmithHome(); err == nil {
			v.AddConfigPath(filepath.Join(home, "config"))
		}
	}

	v.SetEnvPrefix("PAGESMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit != "" {
			return nil, fmt.Errorf("read settings %s: %w", explicit, err)
		}
		// The search path is optional; anything other than "not found"
		// means a settings file exists but is broken.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks value constraints viper cannot express.
func (c *Config) Validate() error {
	if !ValidFormat(c.Report.Format) {
		return fmt.Errorf("report.format: unsupported value %q (use console, json or markdown)", c.Report.Format)
	}
	if strings.TrimSpace(c.Slots.Attribute) == "" {
		return fmt.Errorf("slots.attribute: must not be empty")
	}
	return nil
}

// ValidFormat reports whether f names a report format.
func ValidFormat(f string) bool {
	switch f {
	case FormatConsole, FormatJSON, FormatMarkdown:
		return true
	}
	return false
}

// GetPagesmithHome returns the pagesmith home directory
func GetPagesmithHome() (string, error) {
	if home := os.Getenv("PAGESMITH_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".pagesmith"), nil
}
