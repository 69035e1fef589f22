package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "pugx.yaml"

// Config represents the pugx.yaml configuration.
type Config struct {
	// SrcDir is the directory scanned for .pug templates.
	SrcDir string `yaml:"srcDir,omitempty"`

	// OutDir receives the compiled .jsx files.
	OutDir string `yaml:"outDir,omitempty"`

	// Dev configures the development server.
	Dev *DevConfig `yaml:"dev,omitempty"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	// Port the dev server listens on.
	Port int `yaml:"port,omitempty"`

	// Host the dev server binds to.
	Host string `yaml:"host,omitempty"`
}

// Load loads configuration from pugx.yaml in the project directory. A
// missing file yields the defaults.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes configuration to pugx.yaml in the project directory.
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SrcDir: "templates",
		OutDir: "dist",
		Dev: &DevConfig{
			Port: 5173,
			Host: "localhost",
		},
	}
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.SrcDir == "" {
		config.SrcDir = defaults.SrcDir
	}
	if config.OutDir == "" {
		config.OutDir = defaults.OutDir
	}
	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}
}
