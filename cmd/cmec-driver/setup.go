// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmecmetrics/cmec-driver/internal/config"
	"github.com/cmecmetrics/cmec-driver/internal/library"
)

var (
	condaSourceFlag string
	envRootFlag     string
	clearCondaFlag  bool
	printCondaFlag  bool

	// setupCmd stores conda settings in the library for later runs.
	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Store conda settings for module execution",
		Long: `Store conda settings for module execution.

The conda source script and environment root are saved in the library
and exported to every driver script as CONDA_SOURCE and CONDA_ENV_ROOT.
Without flags the current settings are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return reportError(err)
			}
			return runSetup(cfg)
		},
	}
)

func init() {
	setupCmd.Flags().StringVar(&condaSourceFlag, "conda-source", "", "path of the script that activates conda")
	setupCmd.Flags().StringVar(&envRootFlag, "env-root", "", "directory containing the conda environments")
	setupCmd.Flags().BoolVar(&clearCondaFlag, "clear-conda", false, "remove the stored conda settings")
	setupCmd.Flags().BoolVar(&printCondaFlag, "print-conda", false, "print the stored conda settings")
}

func runSetup(cfg *config.Config) error {
	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return reportError(err)
	}

	changed := false
	if clearCondaFlag {
		lib.ClearConda()
		changed = true
	}
	if condaSourceFlag != "" {
		if _, err := os.Stat(condaSourceFlag); err != nil {
			return reportError(fmt.Errorf("conda source %s does not exist", condaSourceFlag))
		}
		lib.SetCondaSource(condaSourceFlag)
		changed = true
	}
	if envRootFlag != "" {
		if info, err := os.Stat(envRootFlag); err != nil || !info.IsDir() {
			return reportError(fmt.Errorf("conda environment root %s is not a directory", envRootFlag))
		}
		lib.SetCondaEnvRoot(envRootFlag)
		changed = true
	}

	if changed {
		if err := lib.Persist(); err != nil {
			return reportError(err)
		}
		fmt.Println(SuccessStyle.Render("Successfully updated conda settings"))
	}

	if printCondaFlag || !changed {
		fmt.Println("conda source: " + valueOrUnset(lib.CondaSource()))
		fmt.Println("conda env root: " + valueOrUnset(lib.CondaEnvRoot()))
	}
	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(not set)")
	}
	return ModuleStyle.Render(v)
}
