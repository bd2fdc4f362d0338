// SPDX-License-Identifier: BSD-3-Clause

// Package library maintains the persistent per-user catalog mapping module
// names to module directories.
//
// The catalog is a single JSON file whose location is injected by the
// caller (see internal/config). It is loaded in full at the start of every
// command and persisted in full by the commands that mutate it. Persistence
// writes to a temporary file in the same directory and renames it over the
// catalog, so a crash mid-write cannot corrupt the existing file.
package library

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"

	"github.com/cmecmetrics/cmec-driver/pkg/cueutil"
)

// DriverVersion is the running driver's version stamp. Catalog files
// stamped with a lexicographically greater version are rejected on load.
const DriverVersion = "20260801"

//go:embed library_schema.cue
var librarySchema string

// libraryDocument is the decoded shape of the catalog file. The modules
// object is re-read from the unified CUE value to preserve document order,
// which plain map decoding would lose.
type libraryDocument struct {
	Version      string            `json:"version"`
	Driver       map[string]any    `json:"cmec-driver"`
	Modules      map[string]string `json:"modules"`
	CondaSource  string            `json:"conda_source,omitempty"`
	CondaEnvRoot string            `json:"conda_env_root,omitempty"`
}

// Entry is one registered module.
type Entry struct {
	// Name is the unique module name.
	Name string
	// Path is the absolute module directory.
	Path string
}

// Library is the in-memory catalog. Module names are unique; iteration
// follows document order for loaded entries and insertion order afterwards.
type Library struct {
	path         string
	version      string
	condaSource  string
	condaEnvRoot string
	names        []string
	modules      map[string]string
}

// Load reads the catalog at path, synthesizing an empty skeleton file first
// if none exists. The create-on-first-use behavior replaces a separate init
// command.
func Load(path string) (*Library, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("CMEC library not found; creating new library", "path", path)
		empty := &Library{path: path, version: DriverVersion, modules: map[string]string{}}
		if err := empty.Persist(); err != nil {
			return nil, fmt.Errorf("failed to create library file: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	if !json.Valid(data) {
		return nil, &ParseError{Path: path}
	}

	parsed, err := cueutil.ParseAndDecode[libraryDocument](
		librarySchema,
		data,
		"#Library",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}
	doc := parsed.Value

	if doc.Version > DriverVersion {
		return nil, &VersionError{Path: path, LibraryVersion: doc.Version, DriverVersion: DriverVersion}
	}

	lib := &Library{
		path:         path,
		version:      doc.Version,
		condaSource:  doc.CondaSource,
		condaEnvRoot: doc.CondaEnvRoot,
		modules:      make(map[string]string, len(doc.Modules)),
	}

	// Walk the unified value so modules keep their document order.
	modulesValue := parsed.Unified.LookupPath(cue.ParsePath("modules"))
	iter, err := modulesValue.Fields()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	for iter.Next() {
		name := iter.Selector().Unquoted()
		dir, err := iter.Value().String()
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("module %q path is not a string", name)}
		}
		if _, ok := lib.modules[name]; ok {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("repeated module name %q", name)}
		}
		lib.names = append(lib.names, name)
		lib.modules[name] = dir
	}

	return lib, nil
}

// Path returns the catalog file location this library was loaded from.
func (l *Library) Path() string { return l.path }

// Version returns the catalog's stored version stamp.
func (l *Library) Version() string { return l.version }

// Size returns the number of registered modules.
func (l *Library) Size() int { return len(l.names) }

// Insert registers a module. It returns a *DuplicateModuleError without
// modifying the catalog when the name is already present.
func (l *Library) Insert(name, dir string) error {
	if _, ok := l.modules[name]; ok {
		return &DuplicateModuleError{Name: name}
	}
	l.names = append(l.names, name)
	l.modules[name] = dir
	return nil
}

// Remove unregisters a module. It returns a *ModuleNotFoundError when the
// name is absent.
func (l *Library) Remove(name string) error {
	if _, ok := l.modules[name]; !ok {
		return &ModuleNotFoundError{Name: name}
	}
	delete(l.modules, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the module directory registered under name.
func (l *Library) Find(name string) (string, bool) {
	dir, ok := l.modules[name]
	return dir, ok
}

// Entries returns the registered modules in catalog order.
func (l *Library) Entries() []Entry {
	entries := make([]Entry, len(l.names))
	for i, name := range l.names {
		entries[i] = Entry{Name: name, Path: l.modules[name]}
	}
	return entries
}

// CondaSource returns the stored conda installation source, if any.
func (l *Library) CondaSource() string { return l.condaSource }

// SetCondaSource stores the conda installation source.
func (l *Library) SetCondaSource(path string) { l.condaSource = path }

// CondaEnvRoot returns the stored conda environment root, if any.
func (l *Library) CondaEnvRoot() string { return l.condaEnvRoot }

// SetCondaEnvRoot stores the conda environment root.
func (l *Library) SetCondaEnvRoot(dir string) { l.condaEnvRoot = dir }

// ClearConda removes both conda settings.
func (l *Library) ClearConda() {
	l.condaSource = ""
	l.condaEnvRoot = ""
}

// Persist writes the full catalog back to its file atomically: the document
// is written to a temporary file in the same directory and renamed over the
// destination.
func (l *Library) Persist() error {
	doc, err := l.marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary library file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write library file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write library file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace library file: %w", err)
	}
	return nil
}

// marshal renders the catalog document with a fixed top-level key order and
// modules in catalog order. encoding/json map marshaling would sort module
// names, losing insertion order across reloads.
func (l *Library) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  %s: %s,\n", mustQuote("version"), mustQuote(versionOrDefault(l.version)))
	fmt.Fprintf(&buf, "  %s: {},\n", mustQuote("cmec-driver"))

	fmt.Fprintf(&buf, "  %s: {", mustQuote("modules"))
	for i, name := range l.names {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, "\n    %s: %s", mustQuote(name), mustQuote(l.modules[name]))
	}
	if len(l.names) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}")

	if l.condaSource != "" {
		fmt.Fprintf(&buf, ",\n  %s: %s", mustQuote("conda_source"), mustQuote(l.condaSource))
	}
	if l.condaEnvRoot != "" {
		fmt.Fprintf(&buf, ",\n  %s: %s", mustQuote("conda_env_root"), mustQuote(l.condaEnvRoot))
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

func versionOrDefault(v string) string {
	if v == "" {
		return DriverVersion
	}
	return v
}

func mustQuote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail.
		panic(err)
	}
	return string(b)
}
