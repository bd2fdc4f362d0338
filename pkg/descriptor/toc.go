// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmecmetrics/cmec-driver/pkg/cueutil"
)

// TOCFileName is the standard file name of a multi-configuration module
// table of contents.
const TOCFileName = "contents.json"

//go:embed contents_schema.cue
var contentsSchema string

// tocDocument is the decoded shape of contents.json.
type tocDocument struct {
	Module struct {
		Name     string `json:"name"`
		LongName string `json:"long_name"`
	} `json:"module"`
	Contents []string `json:"contents"`
}

// TOCEntry is one configuration listed in a table of contents.
type TOCEntry struct {
	// Name is the configuration name declared in its settings file (not the
	// file name).
	Name string
	// SettingsPath is the path to the configuration's settings file.
	SettingsPath string
	// Settings is the parsed configuration.
	Settings *Settings
}

// TOC is a parsed multi-configuration module table of contents. Immutable
// after load. Entries keep contents-array order for listing; lookup by name
// is order-independent.
type TOC struct {
	name     string
	longName string
	filePath string
	entries  []TOCEntry
	byName   map[string]int
}

// ParseTOC reads and validates the contents.json in moduleDir, then loads
// every configuration it references.
//
// Configurations whose settings fail to parse are dropped with a warning
// rather than aborting the whole load; this is intentional resilience
// against partially-authored modules. Two configurations declaring the same
// name are reported as a collision and the later one is dropped.
func ParseTOC(moduleDir string) (*TOC, error) {
	path := filepath.Join(moduleDir, TOCFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contents file: %w", err)
	}

	if !json.Valid(data) {
		return nil, &ParseError{Path: path}
	}

	parsed, err := cueutil.ParseAndDecode[tocDocument](
		contentsSchema,
		data,
		"#Contents",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}
	result := parsed.Value

	toc := &TOC{
		name:     result.Module.Name,
		longName: result.Module.LongName,
		filePath: path,
		byName:   make(map[string]int),
	}

	for _, rel := range result.Contents {
		settingsPath := filepath.Join(moduleDir, rel)
		settings, err := ParseSettings(settingsPath)
		if err != nil {
			slog.Warn("skipping invalid configuration", "toc", path, "settings", settingsPath, "error", err)
			continue
		}
		toc.insert(settings.Name(), TOCEntry{
			Name:         settings.Name(),
			SettingsPath: settingsPath,
			Settings:     settings,
		})
	}

	return toc, nil
}

// insert adds an entry unless its name collides with an earlier one. The
// first entry wins; the collision is reported, not fatal.
func (t *TOC) insert(name string, entry TOCEntry) {
	if i, ok := t.byName[name]; ok {
		slog.Warn("repeated configuration name in module contents",
			"toc", t.filePath, "config", name,
			"kept", t.entries[i].SettingsPath, "dropped", entry.SettingsPath)
		return
	}
	t.byName[name] = len(t.entries)
	t.entries = append(t.entries, entry)
}

// Name returns the parent module identifier.
func (t *TOC) Name() string { return t.name }

// LongName returns the human-readable module name.
func (t *TOC) LongName() string { return t.longName }

// Size returns the number of successfully loaded configurations.
func (t *TOC) Size() int { return len(t.entries) }

// Entries returns the configurations in contents-array order.
func (t *TOC) Entries() []TOCEntry { return t.entries }

// ConfigNames returns the configuration names in contents-array order.
func (t *TOC) ConfigNames() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Find returns the entry for the named configuration.
func (t *TOC) Find(name string) (TOCEntry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return TOCEntry{}, false
	}
	return t.entries[i], true
}

// HasTOC reports whether dir contains a contents.json descriptor.
func HasTOC(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, TOCFileName))
	return err == nil && !info.IsDir()
}
