// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cmecmetrics/cmec-driver/internal/config"
	"github.com/cmecmetrics/cmec-driver/internal/issue"
	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

var (
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging and full error chains
	verbose bool
	// libraryFile overrides the catalog file location
	libraryFile string
	// configDir overrides the user config directory
	configDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "cmec-driver",
		Short: "Coordinated Model Evaluation Capabilities driver",
		Long: TitleStyle.Render("cmec-driver") + SubtitleStyle.Render(" - Coordinated Model Evaluation Capabilities driver") + `

cmec-driver maintains a per-user library of CMEC evaluation modules
and runs their driver scripts against model and observational data.
A module directory declares itself through a settings.json file
(one configuration) or a contents.json file (several configurations).

` + SubtitleStyle.Render("Quick Start:") + `
  1. Register a module:  cmec-driver register <module directory>
  2. Inspect the library: cmec-driver list all
  3. Run configurations:  cmec-driver run <obs> <model> <output> <module>...`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&libraryFile, "library", "", "library file (default is $HOME/"+config.LibraryFileName+")")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "user config directory (default is $HOME/"+config.ConfigDirName+")")

	// Add subcommands
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(unregisterCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Commit == "unknown" {
		return library.DriverVersion + " (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", library.DriverVersion, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// Use fang.Execute for enhanced Cobra styling. The version goes through
	// fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig applies global flags before any RunE handler executes.
func initRootConfig() {
	if libraryFile != "" {
		config.SetLibraryPathOverride(libraryFile)
	}
	if configDir != "" {
		config.SetConfigDirOverride(configDir)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: config.AppName,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// explain writes the catalog help entry matching err to stderr, when one
// exists. Rendering failures fall back to the raw markdown.
func explain(err error) {
	id, ok := issueIdFor(err)
	if !ok {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}

	rendered, renderErr := entry.Render("dark")
	if renderErr != nil {
		rendered = string(entry.MarkdownMsg())
	}
	fmt.Fprintln(os.Stderr, rendered)
}

// issueIdFor maps known error types to their catalog entries.
func issueIdFor(err error) (issue.Id, bool) {
	var noDescriptor *descriptor.NoDescriptorError
	var notFound *library.ModuleNotFoundError
	var corrupt *library.ParseError

	switch {
	case errors.As(err, &noDescriptor):
		return issue.NoDescriptorId, true
	case errors.As(err, &notFound):
		return issue.ModuleNotFoundId, true
	case errors.As(err, &corrupt):
		return issue.LibraryCorruptId, true
	default:
		return 0, false
	}
}

// reportError prints err for the user, appends any catalog help entry, and
// converts it to a bare ExitError so the message is not printed twice.
func reportError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	explain(err)
	return &ExitError{Code: 1}
}
