// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmecmetrics/cmec-driver/pkg/cueutil"
)

// SettingsFileName is the standard file name of a single-configuration
// module descriptor.
const SettingsFileName = "settings.json"

//go:embed settings_schema.cue
var settingsSchema string

// SettingsInfo is the identity block of a settings descriptor.
type SettingsInfo struct {
	// Name is the configuration identifier (alphanumeric and underscore).
	Name string `json:"name"`
	// LongName is the human-readable configuration name.
	LongName string `json:"long_name"`
	// Driver is the driver script path, relative to the module directory.
	Driver string `json:"driver"`
}

// Settings is one parsed configuration of a module. Immutable after a
// successful parse.
type Settings struct {
	// Info carries the required identity fields.
	Info SettingsInfo `json:"settings"`
	// Varlist is the opaque variable list sub-document.
	Varlist map[string]any `json:"varlist"`
	// Obslist is the opaque observation list sub-document.
	Obslist map[string]any `json:"obslist"`
	// DefaultParameters is the optional per-configuration default parameter
	// block copied into the user's cmec.json on register.
	DefaultParameters map[string]any `json:"default_parameters,omitempty"`

	// FilePath is the descriptor file this value was parsed from.
	FilePath string `json:"-"`
}

// ParseSettings reads and validates a settings.json file.
//
// A file that is not valid JSON yields a *ParseError; a well-formed file
// with missing or mistyped required keys yields a *cueutil.ValidationError.
// Neither is fatal to the caller by contract: TOC scanning skips invalid
// configurations, and the registrar surfaces the message as a user error.
func ParseSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return parseSettingsBytes(data, path)
}

func parseSettingsBytes(data []byte, path string) (*Settings, error) {
	if !json.Valid(data) {
		return nil, &ParseError{Path: path}
	}

	result, err := cueutil.ParseAndDecode[Settings](
		settingsSchema,
		data,
		"#Settings",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	s := result.Value
	s.FilePath = path
	return s, nil
}

// Name returns the configuration identifier.
func (s *Settings) Name() string { return s.Info.Name }

// LongName returns the human-readable configuration name.
func (s *Settings) LongName() string { return s.Info.LongName }

// DriverScript returns the driver script path relative to the module
// directory.
func (s *Settings) DriverScript() string { return s.Info.Driver }

// DriverPath resolves the driver script against the given module directory.
func (s *Settings) DriverPath(moduleDir string) string {
	return filepath.Join(moduleDir, s.Info.Driver)
}

// settingsPathIn returns the settings.json path inside a module directory.
func settingsPathIn(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}

// HasSettings reports whether dir contains a settings.json descriptor.
func HasSettings(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, SettingsFileName))
	return err == nil && !info.IsDir()
}
