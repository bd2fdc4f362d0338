// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmecmetrics/cmec-driver/pkg/cueutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

const validSettings = `{
  "settings": {
    "name": "mean_climate",
    "long_name": "Mean Climate Metrics",
    "driver": "scripts/run_mean_climate.sh"
  },
  "varlist": {"tas": {"frequency": "mon"}},
  "obslist": {"ERA5": {}},
  "default_parameters": {"regions": ["global"]}
}`

func TestParseSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, validSettings)

	s, err := ParseSettings(path)
	if err != nil {
		t.Fatalf("ParseSettings failed: %v", err)
	}

	if s.Name() != "mean_climate" {
		t.Errorf("expected name mean_climate, got %q", s.Name())
	}
	if s.LongName() != "Mean Climate Metrics" {
		t.Errorf("expected long name Mean Climate Metrics, got %q", s.LongName())
	}
	if s.DriverScript() != "scripts/run_mean_climate.sh" {
		t.Errorf("unexpected driver script %q", s.DriverScript())
	}
	if s.FilePath != path {
		t.Errorf("expected file path %q, got %q", path, s.FilePath)
	}
	if _, ok := s.DefaultParameters["regions"]; !ok {
		t.Error("expected default_parameters to carry the regions key")
	}
}

func TestParseSettingsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"settings": `)

	_, err := ParseSettings(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, parseErr.Path)
	}
}

func TestParseSettingsValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing driver",
			content: `{
  "settings": {"name": "m", "long_name": "M"},
  "varlist": {},
  "obslist": {}
}`,
		},
		{
			name: "empty driver",
			content: `{
  "settings": {"name": "m", "long_name": "M", "driver": ""},
  "varlist": {},
  "obslist": {}
}`,
		},
		{
			name: "name with invalid characters",
			content: `{
  "settings": {"name": "mean climate", "long_name": "M", "driver": "run.sh"},
  "varlist": {},
  "obslist": {}
}`,
		},
		{
			name: "driver is not a string",
			content: `{
  "settings": {"name": "m", "long_name": "M", "driver": 7},
  "varlist": {},
  "obslist": {}
}`,
		},
		{
			name: "missing varlist",
			content: `{
  "settings": {"name": "m", "long_name": "M", "driver": "run.sh"},
  "obslist": {}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			writeFile(t, path, tt.content)

			_, err := ParseSettings(path)
			var validationErr *cueutil.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *cueutil.ValidationError, got %T: %v", err, err)
			}
			if validationErr.FilePath != path {
				t.Errorf("expected file path %q in error, got %q", path, validationErr.FilePath)
			}
		})
	}
}

func TestDriverPath(t *testing.T) {
	s := &Settings{Info: SettingsInfo{Driver: "scripts/run.sh"}}

	got := s.DriverPath("/modules/pmp")
	want := filepath.Join("/modules/pmp", "scripts/run.sh")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHasSettings(t *testing.T) {
	dir := t.TempDir()
	if HasSettings(dir) {
		t.Error("expected no settings.json in empty dir")
	}

	writeFile(t, filepath.Join(dir, SettingsFileName), validSettings)
	if !HasSettings(dir) {
		t.Error("expected settings.json to be detected")
	}
}
