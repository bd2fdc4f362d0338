// SPDX-License-Identifier: BSD-3-Clause

// Package cueutil provides shared CUE parsing utilities for the JSON
// descriptors consumed by cmec-driver.
//
// JSON is a subset of CUE, so module descriptors (settings.json,
// contents.json) and the library catalog are compiled as CUE values and
// unified against embedded CUE schemas. The package consolidates the
// 3-step flow used by pkg/descriptor and internal/library:
//
//  1. Compile the embedded schema
//  2. Compile the user document and unify with the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed settings_schema.cue
//	var settingsSchema string
//
//	result, err := cueutil.ParseAndDecode[Settings](
//	    settingsSchema,
//	    fileBytes,
//	    "#Settings",
//	    cueutil.WithFilename("settings.json"),
//	)
//	if err != nil {
//	    return nil, err // error includes the document path of the bad field
//	}
package cueutil
