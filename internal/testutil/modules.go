// SPDX-License-Identifier: BSD-3-Clause

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// driverScript is the trivial driver used by module fixtures. It exits
// cleanly so execution tests can assert on the run flow, not the payload.
const driverScript = "#!/bin/bash\necho running\n"

// SettingsDoc builds a minimal settings.json document for fixtures.
func SettingsDoc(name, driver string, defaults map[string]any) map[string]any {
	doc := map[string]any{
		"settings": map[string]any{
			"name":      name,
			"long_name": "The " + name + " metric",
			"driver":    driver,
		},
		"varlist": map[string]any{},
		"obslist": map[string]any{},
	}
	if defaults != nil {
		doc["default_parameters"] = defaults
	}
	return doc
}

// WriteJSON marshals doc and writes it to path, creating parent directories.
func WriteJSON(t testing.TB, path string, doc any) {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// NewSettingsModule creates a single-configuration module fixture under
// root: a directory named after the module holding settings.json and an
// executable driver script. It returns the module directory.
func NewSettingsModule(t testing.TB, root, name string, defaults map[string]any) string {
	t.Helper()

	dir := filepath.Join(root, name)
	WriteJSON(t, filepath.Join(dir, "settings.json"), SettingsDoc(name, name+"_driver.sh", defaults))
	writeDriver(t, filepath.Join(dir, name+"_driver.sh"))
	return dir
}

// NewTOCModule creates a multi-configuration module fixture under root: a
// directory holding contents.json plus one subdirectory per configuration,
// each with its own settings.json and executable driver script. It returns
// the module directory.
func NewTOCModule(t testing.TB, root, name string, configs []string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	contents := make([]string, len(configs))
	for i, config := range configs {
		contents[i] = filepath.Join(config, "settings.json")
		WriteJSON(t, filepath.Join(dir, config, "settings.json"), SettingsDoc(config, "driver.sh", nil))
		writeDriver(t, filepath.Join(dir, config, "driver.sh"))
	}

	WriteJSON(t, filepath.Join(dir, "contents.json"), map[string]any{
		"module": map[string]any{
			"name":      name,
			"long_name": "The " + name + " module",
		},
		"contents": contents,
	})
	return dir
}

func writeDriver(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(driverScript), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
