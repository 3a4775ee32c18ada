package config

import (
	"fmt"
	"net"

	"github.com/charliek/logview/internal/domain"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return domain.ErrInvalidConfig
}

// Validate checks the configuration for errors
func Validate(config *Config) error {
	if config.Listen.Port < 1 || config.Listen.Port > 65535 {
		return ValidationError{
			Field:   "listen.port",
			Message: fmt.Sprintf("port %d out of range (1-65535)", config.Listen.Port),
		}
	}

	if config.Listen.Host != "" && net.ParseIP(config.Listen.Host) == nil {
		return ValidationError{
			Field:   "listen.host",
			Message: fmt.Sprintf("%q is not a valid IP address", config.Listen.Host),
		}
	}

	if config.API.Enabled {
		if config.API.Port < 1 || config.API.Port > 65535 {
			return ValidationError{
				Field:   "api.port",
				Message: fmt.Sprintf("port %d out of range (1-65535)", config.API.Port),
			}
		}
		if config.API.Port == config.Listen.Port {
			return ValidationError{
				Field:   "api.port",
				Message: "api port must differ from the udp listen port",
			}
		}
	}

	return nil
}
