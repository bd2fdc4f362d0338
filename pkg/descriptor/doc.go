// SPDX-License-Identifier: BSD-3-Clause

// Package descriptor defines the schema and parsing for CMEC module
// descriptor files.
//
// A module directory contains exactly one of two descriptor kinds:
//
//   - settings.json: a single-configuration module. Carries the module
//     identity (settings.name, settings.long_name, settings.driver) and the
//     opaque varlist/obslist sub-documents.
//   - contents.json: a multi-configuration module table of contents. Carries
//     the parent module identity and a list of relative paths to per
//     configuration settings.json files.
//
// Descriptors are JSON documents validated against embedded CUE schemas via
// pkg/cueutil. Which kind a directory holds is resolved once at load time by
// Load, which returns a tagged Module value instead of re-probing the
// filesystem at every call site.
package descriptor
