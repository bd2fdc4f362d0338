// SPDX-License-Identifier: BSD-3-Clause

package descriptor

import "fmt"

// ParseError is a descriptor file that is not well-formed JSON.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed descriptor %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed descriptor %s: not valid JSON", e.Path)
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// NoDescriptorError is a module directory containing neither descriptor kind.
type NoDescriptorError struct {
	// Dir is the module directory that was probed.
	Dir string
}

// Error implements the error interface.
func (e *NoDescriptorError) Error() string {
	return fmt.Sprintf("module path %s must contain %s or %s", e.Dir, TOCFileName, SettingsFileName)
}
