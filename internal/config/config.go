package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charliek/logview/internal/constants"
	"github.com/charliek/logview/internal/domain"
)

// Config represents the top-level logview configuration
type Config struct {
	Listen  ListenConfig `yaml:"listen"`
	API     APIConfig    `yaml:"api"`
	EnvFile string       `yaml:"env_file"`
}

// ListenConfig defines the UDP ingestion socket configuration
type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// APIConfig defines the optional read-only HTTP API configuration
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			Host: constants.DefaultListenHost,
			Port: constants.DefaultListenPort,
		},
		API: APIConfig{
			Enabled: false,
			Host:    constants.DefaultAPIHost,
			Port:    constants.DefaultAPIPort,
		},
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from YAML bytes, applies defaults and
// environment overrides, and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	applyDefaults(config)

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Listen.Port == 0 {
		config.Listen.Port = constants.DefaultListenPort
	}
	if config.API.Host == "" {
		config.API.Host = constants.DefaultAPIHost
	}
	if config.API.Port == 0 {
		config.API.Port = constants.DefaultAPIPort
	}
}
