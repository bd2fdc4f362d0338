// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmecmetrics/cmec-driver/internal/config"
	"github.com/cmecmetrics/cmec-driver/internal/issue"
	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/internal/runner"
	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

// registerCmd adds one module directory to the library.
var registerCmd = &cobra.Command{
	Use:   "register <module directory>",
	Short: "Add a module to the CMEC library",
	Long: `Add a module to the CMEC library.

The directory must contain a settings.json file (single-configuration
module) or a contents.json file (multi-configuration module). The module
name comes from the descriptor, and the module's default parameters are
copied into ` + "~/" + config.ConfigDirName + "/" + config.UserConfigFileName + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return reportError(err)
		}
		return runRegister(cfg, args[0])
	},
}

func runRegister(cfg *config.Config, dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return reportError(err)
	}
	fmt.Println("Registering " + ModuleStyle.Render(dir) + "...")

	mod, err := descriptor.Load(dir)
	if err != nil {
		return reportError(issue.NewErrorContext().
			WithOperation("register module").
			WithResource(dir).
			WithSuggestion("Pass the module's top-level directory, not a file inside it").
			Wrap(err).
			BuildError())
	}

	switch mod.Kind {
	case descriptor.KindTOC:
		fmt.Printf("Found %s with %d configurations:\n", descriptor.TOCFileName, mod.TOC.Size())
		for _, name := range mod.TOC.ConfigNames() {
			fmt.Println("  " + ModuleStyle.Render(mod.TOC.Name()+"/"+name))
		}
	default:
		fmt.Printf("Found %s for module %s\n", descriptor.SettingsFileName, ModuleStyle.Render(mod.Name()))
	}

	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return reportError(err)
	}
	if err := lib.Insert(mod.Name(), dir); err != nil {
		return reportError(err)
	}
	if err := lib.Persist(); err != nil {
		return reportError(err)
	}

	if err := library.WriteModuleDefaults(cfg.UserConfigPath(), mod, runner.TerminalConfirm); err != nil {
		return reportError(err)
	}

	fmt.Println(SuccessStyle.Render("Successfully registered module " + mod.Name()))
	return nil
}
