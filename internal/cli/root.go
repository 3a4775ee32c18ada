// Package cli wires the command line surface for the logview binary.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charliek/logview/internal/config"
	"github.com/charliek/logview/internal/constants"
	"github.com/charliek/logview/internal/domain"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath string
	listenPort int
	headless   bool
	apiEnabled bool
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "logview",
	Short: "A UDP log record viewer",
	Long: `logview receives length-prefixed log records over UDP, keeps them in
an append-only in-memory store, and shows them in a live terminal view
with substring filtering on the message field. It supports:
  - Batched ingestion of bursty UDP traffic
  - Live substring filtering as you type
  - A headless mode that prints records to stdout
  - An optional read-only HTTP API for remote inspection`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runViewer(cfg)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logview version %s\n", Version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", constants.DefaultConfigFile, "Config file")
	rootCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "UDP listen port (overrides config)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Print records to stdout instead of running the TUI")
	rootCmd.Flags().BoolVar(&apiEnabled, "api", false, "Enable the read-only HTTP API")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetVersionTemplate("logview version {{.Version}}\n")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration: the config file when
// present (required only when --config was given explicitly), then flag
// overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) && !cmd.Flags().Changed("config") {
			cfg = config.Default()
			if envErr := config.ApplyEnv(cfg); envErr != nil {
				return nil, envErr
			}
		} else {
			return nil, err
		}
	}

	if cmd.Flags().Changed("port") {
		cfg.Listen.Port = listenPort
	}
	if apiEnabled {
		cfg.API.Enabled = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
