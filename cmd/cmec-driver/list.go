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

// listCmd prints the library contents.
var listCmd = &cobra.Command{
	Use:   "list [all]",
	Short: "List the modules in the CMEC library",
	Long: `List the modules in the CMEC library.

With the "all" argument, multi-configuration modules are expanded into
their individual configurations.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 arg, received %d", len(args))
		}
		if len(args) == 1 && args[0] != "all" {
			return fmt.Errorf("invalid argument %q, expected \"all\"", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return reportError(err)
		}
		return runList(cfg, len(args) == 1)
	},
}

func runList(cfg *config.Config, all bool) error {
	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return reportError(err)
	}

	if lib.Size() == 0 {
		fmt.Println("The CMEC library is empty.")
		return nil
	}

	fmt.Println(TitleStyle.Render("CMEC library contents:"))
	for _, entry := range lib.Entries() {
		fmt.Printf("  %s %s\n", ModuleStyle.Render(entry.Name), SubtitleStyle.Render("("+entry.Path+")"))
		if !all {
			continue
		}

		// Expanding a module requires its descriptor; a module whose
		// directory has gone missing is reported, not fatal.
		mod, err := descriptor.Load(entry.Path)
		if err != nil {
			slog.Warn("could not read module descriptor", "module", entry.Name, "error", err)
			continue
		}
		if mod.Kind == descriptor.KindTOC {
			for _, name := range mod.TOC.ConfigNames() {
				fmt.Println("    " + ModuleStyle.Render(entry.Name+"/"+name))
			}
		}
	}
	return nil
}
