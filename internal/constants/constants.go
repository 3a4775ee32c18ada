// Package constants provides shared configuration values used across the logview application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "logview.yaml"

	// DefaultListenHost is the default host the UDP socket binds to
	// (empty means all interfaces)
	DefaultListenHost = ""

	// DefaultListenPort is the default UDP listen port
	DefaultListenPort = 9021

	// DefaultAPIHost is the default host for the HTTP API server
	DefaultAPIHost = "127.0.0.1"

	// DefaultAPIPort is the default port for the HTTP API server
	DefaultAPIPort = 5665
)

// Timeout and duration defaults
const (
	// DefaultShutdownTimeout is the default timeout for graceful shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Ingestion limits
const (
	// MaxDatagramSize is the largest datagram the listener reads.
	// A UDP payload cannot exceed 65507 bytes.
	MaxDatagramSize = 64 * 1024

	// DefaultLogLimit is the default number of records the API returns
	DefaultLogLimit = 100

	// MaxLogLines is the maximum number of records that can be requested
	// from the API to prevent memory exhaustion (DoS protection)
	MaxLogLines = 10000
)
