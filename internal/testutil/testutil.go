// SPDX-License-Identifier: BSD-3-Clause

// Package testutil provides shared helpers for cmec-driver tests.
package testutil

import (
	"os"
	"runtime"
	"testing"
)

// MustSetenv sets an environment variable and returns a cleanup function
// restoring the previous value. The test fails on error.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()

	prev, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
	return func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	}
}

// SetHomeDir points the platform home-directory variable at dir and returns
// a cleanup function restoring the original value.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//	    // code that resolves ~/.cmeclibrary ...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}
