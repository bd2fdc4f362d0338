// SPDX-License-Identifier: BSD-3-Clause

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize is the maximum descriptor size accepted by ParseAndDecode
// unless overridden with WithMaxFileSize. Module descriptors are small; a
// multi-megabyte file is almost certainly not one.
const DefaultMaxFileSize int64 = 4 * 1024 * 1024

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

// Option configures a ParseAndDecode call.
type Option func(*options)

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides the maximum accepted document size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete requires all schema fields to be concrete after unification.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize, concrete: true}
}

// ParseResult contains the result of a successful parse operation.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the unified CUE value, available for callers that need
	// ordered field iteration or lookups beyond the decoded struct.
	Unified cue.Value
}

// ParseAndDecode performs the 3-step CUE parsing flow:
//
//  1. Compile the embedded schema
//  2. Compile the document and unify with the schema
//  3. Validate and decode to a Go struct
//
// The schemaPath names the root definition inside the schema (e.g.
// "#Settings"). Errors carry the document path of the offending field.
func ParseAndDecode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if int64(len(data)) > o.maxFileSize {
		return nil, &ValidationError{
			FilePath: filename,
			Message:  fmt.Sprintf("document too large (%d bytes, max %d)", len(data), o.maxFileSize),
		}
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	docValue := ctx.CompileBytes(data, cue.Filename(filename))
	if docValue.Err() != nil {
		return nil, FormatError(docValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(docValue)

	if o.concrete {
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			return nil, FormatError(err, filename)
		}
	} else {
		if err := unified.Validate(); err != nil {
			return nil, FormatError(err, filename)
		}
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}
