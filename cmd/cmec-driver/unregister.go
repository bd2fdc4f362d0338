// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmecmetrics/cmec-driver/internal/config"
	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

// unregisterCmd removes one module from the library.
var unregisterCmd = &cobra.Command{
	Use:   "unregister <module name>",
	Short: "Remove a module from the CMEC library",
	Long: `Remove a module from the CMEC library.

The module directory itself is left untouched; only the library entry and
the module's default parameters in ` + config.UserConfigFileName + ` are removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return reportError(err)
		}
		return runUnregister(cfg, args[0])
	},
}

func runUnregister(cfg *config.Config, name string) error {
	fmt.Println("Unregistering " + ModuleStyle.Render(name) + "...")

	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return reportError(err)
	}

	// Load the descriptor before removing the entry so the module's default
	// parameters can be cleaned out of the user config. A missing or broken
	// module directory must not block unregistration.
	var mod *descriptor.Module
	if dir, ok := lib.Find(name); ok {
		if mod, err = descriptor.Load(dir); err != nil {
			slog.Warn("could not read module descriptor; skipping user config clean up", "module", name, "error", err)
			mod = nil
		}
	}

	if err := lib.Remove(name); err != nil {
		return reportError(err)
	}
	if err := lib.Persist(); err != nil {
		return reportError(err)
	}

	if mod != nil {
		if err := library.RemoveModuleDefaults(cfg.UserConfigPath(), mod); err != nil {
			return reportError(err)
		}
	}

	fmt.Println(SuccessStyle.Render("Successfully unregistered module " + name))
	return nil
}
