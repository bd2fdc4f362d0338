// SPDX-License-Identifier: BSD-3-Clause

package library

import "fmt"

// ParseError is a catalog file that is not well-formed JSON.
type ParseError struct {
	// Path is the catalog file that failed to parse.
	Path string
	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed library file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed library file %s: not valid JSON", e.Path)
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateModuleError is an insert whose module name is already registered.
type DuplicateModuleError struct {
	// Name is the colliding module name.
	Name string
}

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q already exists in library; if the path has changed first run \"unregister %s\"", e.Name, e.Name)
}

// ModuleNotFoundError is a lookup or removal of an unregistered module.
type ModuleNotFoundError struct {
	// Name is the missing module name.
	Name string
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found in library", e.Name)
}

// VersionError is a catalog written by a newer driver than the one running.
type VersionError struct {
	// Path is the catalog file.
	Path string
	// LibraryVersion is the version stamp stored in the catalog.
	LibraryVersion string
	// DriverVersion is the running driver's version.
	DriverVersion string
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("library file %s version %q is greater than driver version %q",
		e.Path, e.LibraryVersion, e.DriverVersion)
}
