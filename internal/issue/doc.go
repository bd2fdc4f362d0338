// SPDX-License-Identifier: BSD-3-Clause

// Package issue provides user-facing error context.
//
// ActionableError attaches the attempted operation, the resource involved,
// and fix suggestions to a wrapped error; ErrorContext is its fluent
// builder. A small markdown catalog covers the failures new users hit most
// often (no descriptor in a module directory, unknown module, corrupt
// catalog) and is rendered with glamour by the CLI layer.
package issue
