// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmecmetrics/cmec-driver/internal/config"
	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/internal/resolver"
	"github.com/cmecmetrics/cmec-driver/internal/runner"
)

// runCmd resolves selectors and executes the selected configurations.
var runCmd = &cobra.Command{
	Use:   "run <obs dir> <model dir> <output dir> <module>[/<configuration>]...",
	Short: "Run evaluation modules from the CMEC library",
	Long: `Run evaluation modules from the CMEC library.

Each selector names a registered module, or one configuration of a
multi-configuration module as <module>/<configuration>. Every selected
configuration gets its own working directory under the output directory
and is executed in order, one at a time.

Pass "" as the observation directory when the selected modules do not
need observational data; the drivers then see CMEC_OBS_DATA=None.`,
	Args: cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return reportError(err)
		}

		opts := runner.Options{
			ObsDir:   args[0],
			ModelDir: args[1],
			WorkDir:  args[2],
		}
		return runRun(cmd, cfg, opts, args[3:])
	},
}

func runRun(cmd *cobra.Command, cfg *config.Config, opts runner.Options, selectors []string) error {
	fmt.Println(TitleStyle.Render("CMEC driver " + library.DriverVersion))

	lib, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return reportError(err)
	}

	plan, err := resolver.Resolve(lib, selectors)
	if err != nil {
		return reportError(err)
	}

	fmt.Printf("Executing %d configurations:\n", len(plan.Entries))
	for _, entry := range plan.Entries {
		fmt.Println("  " + ModuleStyle.Render(entry.Label))
	}

	opts.ConfigDir = cfg.ConfigDir
	opts.CondaSource = lib.CondaSource()
	opts.CondaEnvRoot = lib.CondaEnvRoot()

	fmt.Println("The following environment will be exported to each driver:")
	for _, v := range []struct{ name, value string }{
		{"CMEC_OBS_DATA", orNoneDisplay(opts.ObsDir)},
		{"CMEC_MODEL_DATA", opts.ModelDir},
		{"CMEC_WK_DIR", opts.WorkDir + "/<configuration>"},
		{"CMEC_CONFIG_DIR", opts.ConfigDir},
		{"CONDA_SOURCE", orNoneDisplay(opts.CondaSource)},
		{"CONDA_ENV_ROOT", orNoneDisplay(opts.CondaEnvRoot)},
	} {
		fmt.Printf("  %s=%s\n", v.name, SubtitleStyle.Render(v.value))
	}

	if err := runner.Run(cmd.Context(), plan, opts); err != nil {
		return reportError(err)
	}
	return nil
}

func orNoneDisplay(v string) string {
	if v == "" {
		return "None"
	}
	return v
}
