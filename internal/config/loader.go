package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by ApplyEnv
const (
	EnvListenHost = "LOGVIEW_LISTEN_HOST"
	EnvListenPort = "LOGVIEW_LISTEN_PORT"
	EnvAPIEnabled = "LOGVIEW_API_ENABLED"
	EnvAPIHost    = "LOGVIEW_API_HOST"
	EnvAPIPort    = "LOGVIEW_API_PORT"
)

// LoadEnvFile reads a .env file and returns the variables as a map
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("env file not found: %s", path)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	return env, nil
}

// ApplyEnv overlays LOGVIEW_* variables onto the config. Variables
// come from the config's env_file first, then the process environment,
// with the process environment taking precedence.
func ApplyEnv(config *Config) error {
	fileEnv, err := LoadEnvFile(config.EnvFile)
	if err != nil {
		return err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	if v, ok := lookup(EnvListenHost); ok {
		config.Listen.Host = v
	}
	if v, ok := lookup(EnvListenPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvListenPort, v, err)
		}
		config.Listen.Port = port
	}
	if v, ok := lookup(EnvAPIEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvAPIEnabled, v, err)
		}
		config.API.Enabled = enabled
	}
	if v, ok := lookup(EnvAPIHost); ok {
		config.API.Host = v
	}
	if v, ok := lookup(EnvAPIPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvAPIPort, v, err)
		}
		config.API.Port = port
	}

	return nil
}
