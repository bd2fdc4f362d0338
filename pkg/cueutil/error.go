// SPDX-License-Identifier: BSD-3-Clause

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError is a well-formed document with a missing or mistyped field.
type ValidationError struct {
	// FilePath is the document being validated.
	FilePath string

	// DocPath is the JSON path to the invalid value (e.g. "settings.name").
	DocPath string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.DocPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.DocPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// FormatError formats a CUE error with JSON path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - settings.json: settings.driver: expected string, got int
//   - contents.json: contents[2]: conflicting values
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		// Not a CUE error, return as-is with the file prefix.
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, pathStr+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return &ValidationError{FilePath: filePath, Message: lines[0]}
	}
	return &ValidationError{
		FilePath: filePath,
		Message:  "validation failed:\n  " + strings.Join(lines, "\n  "),
	}
}

// formatPath converts a CUE error path to JSON-path notation. CUE provides
// error paths as flat string slices (e.g. ["contents", "0"]) where numeric
// elements are array indices; the result is "contents[0]".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := len(part) > 0
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}
