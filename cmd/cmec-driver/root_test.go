// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cmecmetrics/cmec-driver/internal/issue"
	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

func TestIssueIdFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantId issue.Id
		wantOk bool
	}{
		{
			name:   "no descriptor",
			err:    &descriptor.NoDescriptorError{Dir: "/m"},
			wantId: issue.NoDescriptorId,
			wantOk: true,
		},
		{
			name:   "wrapped no descriptor",
			err:    fmt.Errorf("register: %w", &descriptor.NoDescriptorError{Dir: "/m"}),
			wantId: issue.NoDescriptorId,
			wantOk: true,
		},
		{
			name:   "module not found",
			err:    &library.ModuleNotFoundError{Name: "pmp"},
			wantId: issue.ModuleNotFoundId,
			wantOk: true,
		},
		{
			name:   "corrupt library",
			err:    &library.ParseError{Path: "/h/.cmeclibrary"},
			wantId: issue.LibraryCorruptId,
			wantOk: true,
		},
		{
			name:   "unrelated error",
			err:    errors.New("boom"),
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := issueIdFor(tt.err)
			if ok != tt.wantOk {
				t.Fatalf("expected ok=%v, got %v", tt.wantOk, ok)
			}
			if ok && id != tt.wantId {
				t.Errorf("expected id %d, got %d", tt.wantId, id)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.Error() != "exit status 3" {
		t.Errorf("unexpected message %q", err.Error())
	}

	cause := errors.New("driver failed")
	err = &ExitError{Code: 1, Err: cause}
	if err.Error() != "driver failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to unwrap")
	}
}

func TestListArgsValidation(t *testing.T) {
	if err := listCmd.Args(listCmd, nil); err != nil {
		t.Errorf("expected no args to be accepted: %v", err)
	}
	if err := listCmd.Args(listCmd, []string{"all"}); err != nil {
		t.Errorf("expected \"all\" to be accepted: %v", err)
	}
	if err := listCmd.Args(listCmd, []string{"everything"}); err == nil {
		t.Error("expected an unknown argument to be rejected")
	}
	if err := listCmd.Args(listCmd, []string{"all", "extra"}); err == nil {
		t.Error("expected extra arguments to be rejected")
	}
}

func TestOrNoneDisplay(t *testing.T) {
	if got := orNoneDisplay(""); got != "None" {
		t.Errorf("expected None for empty value, got %q", got)
	}
	if got := orNoneDisplay("/data/obs"); got != "/data/obs" {
		t.Errorf("expected the value to pass through, got %q", got)
	}
}
