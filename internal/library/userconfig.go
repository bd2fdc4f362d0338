// SPDX-License-Identifier: BSD-3-Clause

package library

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(question string) (bool, error)

// defaultParameterEntries flattens a module's configurations into cmec.json
// keys: the bare configuration name for single-configuration modules, and
// "module/config" for TOC modules.
func defaultParameterEntries(mod *descriptor.Module) map[string]any {
	entries := make(map[string]any)
	switch mod.Kind {
	case descriptor.KindSettings:
		entries[mod.Settings.Name()] = defaultsOrEmpty(mod.Settings)
	case descriptor.KindTOC:
		for _, e := range mod.TOC.Entries() {
			entries[mod.TOC.Name()+"/"+e.Name] = defaultsOrEmpty(e.Settings)
		}
	}
	return entries
}

func defaultsOrEmpty(s *descriptor.Settings) map[string]any {
	if s.DefaultParameters != nil {
		return s.DefaultParameters
	}
	return map[string]any{}
}

// WriteModuleDefaults copies a module's default_parameters blocks into the
// aggregated user config file, creating the config directory on first use.
// A pre-existing file that is not valid JSON prompts for overwrite; on
// refusal the defaults are skipped with a warning rather than failing the
// registration.
func WriteModuleDefaults(path string, mod *descriptor.Module, confirm ConfirmFunc) error {
	entries := defaultParameterEntries(mod)

	settings := make(map[string]any)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			ok, promptErr := confirm(fmt.Sprintf("Could not load %s. File might not be valid JSON. Overwrite?", path))
			if promptErr != nil {
				return promptErr
			}
			if !ok {
				slog.Warn("skip writing default parameters; this may affect module performance", "path", path)
				return nil
			}
			settings = make(map[string]any)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	for name, params := range entries {
		settings[name] = params
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RemoveModuleDefaults deletes a module's entries from the aggregated user
// config file. A missing or corrupt file is skipped with a warning; clean
// up must not block unregistration.
func RemoveModuleDefaults(path string, mod *descriptor.Module) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	settings := make(map[string]any)
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("could not load user config; skipping clean up", "path", path, "error", err)
		return nil
	}

	for name := range defaultParameterEntries(mod) {
		delete(settings, name)
	}

	out, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
