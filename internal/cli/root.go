// Package cli provides the command-line interface for ddexport.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opsmirror/ddexport/internal/logging"
)

var (
	// Global flags
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// Version information - set by main package at startup from
// internal/version (single source of truth for releases via LDFLAGS).
var (
	Version   = "v0.3.0-dev"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ddexport",
		Short: "Provision and export Datadog organization resources",
		Long: `ddexport ` + Version + ` - Built: ` + BuildTime + `
Provisions per-environment export directories with credential files and
exports resource categories (dashboards, monitors, ...) from the Datadog
API into them.

Typical flow:
  ddexport provision site=us5 env=DEV,PROD
  # fill in DD_API_KEY / DD_APP_KEY in datadog-api/us5_org_dev/.env,
  # or run: ddexport keys DEV site=us5
  ddexport fetch DEV "Dashboards,Monitors" site=us5`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(-1) // zerolog.DebugLevel
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newProvisionCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newKeysCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// parseKeyValueArgs parses key=value style arguments into the provided
// destination map. Recognized keys are lower-cased; anything else is
// warned about and ignored, never fatal.
func parseKeyValueArgs(args []string, dest map[string]*string) {
	log := GetLogger()
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			log.Warnf("ignoring argument %q (expected key=value)", arg)
			continue
		}
		target, ok := dest[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			log.Warnf("ignoring unrecognized argument %q", arg)
			continue
		}
		*target = strings.TrimSpace(value)
	}
}
