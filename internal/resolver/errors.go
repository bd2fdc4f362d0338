// SPDX-License-Identifier: BSD-3-Clause

package resolver

import "fmt"

// SelectorError is a selector string that fails the grammar before any
// library lookup happens.
type SelectorError struct {
	// Selector is the offending selector.
	Selector string
	// Reason describes the grammar violation.
	Reason string
}

// Error implements the error interface.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid module selector %q: %s", e.Selector, e.Reason)
}

// SingleConfigError is a configuration selector applied to a module that
// only has one configuration.
type SingleConfigError struct {
	// Module is the selected module.
	Module string
	// Config is the configuration that was requested.
	Config string
}

// Error implements the error interface.
func (e *SingleConfigError) Error() string {
	return fmt.Sprintf("module %q only contains a single configuration (selector requested %q)", e.Module, e.Config)
}

// ConfigNotFoundError is a configuration selector naming a configuration
// absent from the module's table of contents.
type ConfigNotFoundError struct {
	// Module is the selected module.
	Module string
	// Config is the missing configuration.
	Config string
}

// Error implements the error interface.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("module %q does not contain configuration %q", e.Module, e.Config)
}

// NoDriversFoundError is an execution plan that resolved to zero entries.
// Running zero modules is always an error, never a silent no-op.
type NoDriversFoundError struct{}

// Error implements the error interface.
func (e *NoDriversFoundError) Error() string {
	return "no driver files found"
}
