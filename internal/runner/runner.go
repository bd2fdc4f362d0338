// SPDX-License-Identifier: BSD-3-Clause

// Package runner executes a resolved plan: it prepares per-entry working
// directories, emits environment scripts, and launches each driver script
// as a child process, sequentially and in plan order.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cmecmetrics/cmec-driver/internal/resolver"
)

// BadDirectoryError is a run directory argument that does not exist or is
// not a directory.
type BadDirectoryError struct {
	// Role is the directory's role in the run (model, working,
	// observations).
	Role string
	// Path is the offending path.
	Path string
}

// Error implements the error interface.
func (e *BadDirectoryError) Error() string {
	return fmt.Sprintf("%s directory %s does not exist or is not a directory", e.Role, e.Path)
}

// OverwriteRefusedError aborts a run when the user declines to clear an
// existing output directory. Refusal is fatal to the whole run, not a
// skip-and-continue.
type OverwriteRefusedError struct {
	// Path is the directory the user declined to overwrite.
	Path string
}

// Error implements the error interface.
func (e *OverwriteRefusedError) Error() string {
	return fmt.Sprintf("unable to clear output directory %s", e.Path)
}

// Options configures one run.
type Options struct {
	// ObsDir is the observational data root. Optional; when empty the
	// drivers see CMEC_OBS_DATA=None.
	ObsDir string
	// ModelDir is the model data root. Required.
	ModelDir string
	// WorkDir is the run output root. Required; per-entry working
	// directories are created beneath it.
	WorkDir string
	// ConfigDir is the user config directory exported as CMEC_CONFIG_DIR.
	ConfigDir string
	// CondaSource and CondaEnvRoot are the stored conda settings, exported
	// to drivers as CONDA_SOURCE / CONDA_ENV_ROOT (None when unset).
	CondaSource  string
	CondaEnvRoot string
	// Confirm answers overwrite prompts. Defaults to TerminalConfirm.
	Confirm ConfirmFunc
	// Stdout and Stderr are inherited by driver processes. Default to the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run drives the execution phase for a resolved plan:
//
//  1. Validate and absolutize the run directories.
//  2. Create every entry's working directory, prompting before an existing
//     one is cleared.
//  3. Emit every entry's environment script.
//  4. Launch each script as a child process, in order. A failing driver is
//     reported and does not halt subsequent entries.
func Run(ctx context.Context, plan *resolver.ExecutionPlan, opts Options) error {
	if opts.Confirm == nil {
		opts.Confirm = TerminalConfirm
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	modelDir, err := requireDir("model", opts.ModelDir)
	if err != nil {
		return err
	}
	workDir, err := requireDir("working", opts.WorkDir)
	if err != nil {
		return err
	}
	obsDir := ""
	if opts.ObsDir != "" {
		if obsDir, err = requireDir("observations", opts.ObsDir); err != nil {
			return err
		}
	}
	configDir, err := filepath.Abs(opts.ConfigDir)
	if err != nil {
		return err
	}

	// Prepare all working directories before anything runs, so a refused
	// overwrite aborts the run with no drivers launched.
	workingDirs := make([]string, len(plan.Entries))
	for i, entry := range plan.Entries {
		out := filepath.Join(workDir, filepath.FromSlash(entry.Label))
		if _, statErr := os.Stat(out); statErr == nil {
			ok, promptErr := opts.Confirm(fmt.Sprintf("Path %s already exists. Overwrite?", out))
			if promptErr != nil {
				return promptErr
			}
			if !ok {
				return &OverwriteRefusedError{Path: out}
			}
			if err := os.RemoveAll(out); err != nil {
				return fmt.Errorf("failed to clear output directory: %w", err)
			}
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		workingDirs[i] = out
	}

	// Emit all environment scripts.
	scripts := make([]string, len(plan.Entries))
	for i, entry := range plan.Entries {
		script, err := writeScript(workingDirs[i], entry, scriptEnv{
			CodeDir:      entry.ModulePath,
			ObsDir:       obsDir,
			ModelDir:     modelDir,
			WorkingDir:   workingDirs[i],
			ConfigDir:    configDir,
			CondaSource:  opts.CondaSource,
			CondaEnvRoot: opts.CondaEnvRoot,
		})
		if err != nil {
			return err
		}
		scripts[i] = script
	}

	// Launch each entry in order. The child inherits our standard streams;
	// its exit status is reported but never stops the remaining entries.
	for i, entry := range plan.Entries {
		fmt.Fprintln(opts.Stdout, "------------------------------------------------------------")
		fmt.Fprintln(opts.Stdout, entry.Label)

		cmd := exec.CommandContext(ctx, scripts[i])
		cmd.Stdout = opts.Stdout
		cmd.Stderr = opts.Stderr
		cmd.Stdin = os.Stdin

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("driver script failed", "module", entry.Label, "script", scripts[i], "error", err)
		}
	}
	fmt.Fprintln(opts.Stdout, "------------------------------------------------------------")

	return nil
}

// requireDir absolutizes path and verifies it is an existing directory.
func requireDir(role, path string) (string, error) {
	if path == "" {
		return "", &BadDirectoryError{Role: role, Path: path}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", &BadDirectoryError{Role: role, Path: abs}
	}
	return abs, nil
}
