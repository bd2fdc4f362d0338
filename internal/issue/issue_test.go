// SPDX-License-Identifier: BSD-3-Clause

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	for _, id := range []Id{NoDescriptorId, ModuleNotFoundId, LibraryCorruptId} {
		entry := Get(id)
		if entry == nil {
			t.Fatalf("expected a catalog entry for id %d", id)
		}
		if entry.Id() != id {
			t.Errorf("expected id %d, got %d", id, entry.Id())
		}
		if entry.MarkdownMsg() == "" {
			t.Errorf("expected help text for id %d", id)
		}
	}

	if Get(Id(9999)) != nil {
		t.Error("expected nil for an unknown id")
	}
}

func TestRender(t *testing.T) {
	orig := render
	t.Cleanup(func() { render = orig })
	render = func(in string, stylePath string) (string, error) {
		return "rendered:" + stylePath + ":" + in, nil
	}

	out, err := Get(ModuleNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(out, "rendered:dark:") {
		t.Errorf("expected the style to be forwarded, got %q", out)
	}
}

func TestActionableError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("load library").
		WithResource("/home/u/.cmeclibrary").
		WithSuggestion("Run any command to recreate an empty library").
		Wrap(cause).
		Build()

	want := "failed to load library: /home/u/.cmeclibrary: no such file"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to unwrap")
	}

	formatted := err.Format(false)
	if !strings.Contains(formatted, "• Run any command") {
		t.Errorf("expected the suggestion in formatted output, got %q", formatted)
	}
	if strings.Contains(formatted, "Error chain") {
		t.Error("expected no chain in non-verbose output")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. no such file") {
		t.Errorf("expected the chain in verbose output, got %q", verbose)
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("expected Build to return nil without an operation")
	}

	// BuildError must return a true nil error, not a typed nil inside a
	// non-nil interface.
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	if WrapWithOperation(nil, "anything") != nil {
		t.Error("expected nil for a nil cause")
	}

	cause := errors.New("boom")
	err := WrapWithOperation(cause, "resolve selectors")
	if err.Error() != "failed to resolve selectors: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
