// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"path/filepath"
	"testing"

	"github.com/cmecmetrics/cmec-driver/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if want := filepath.Join(home, LibraryFileName); cfg.LibraryPath != want {
		t.Errorf("expected library path %q, got %q", want, cfg.LibraryPath)
	}
	if want := filepath.Join(home, ConfigDirName); cfg.ConfigDir != want {
		t.Errorf("expected config dir %q, got %q", want, cfg.ConfigDir)
	}
	if cfg.Verbose {
		t.Error("expected verbose to default to false")
	}

	want := filepath.Join(home, ConfigDirName, UserConfigFileName)
	if cfg.UserConfigPath() != want {
		t.Errorf("expected user config path %q, got %q", want, cfg.UserConfigPath())
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
	t.Cleanup(testutil.MustSetenv(t, "CMEC_LIBRARY_PATH", "/elsewhere/.cmeclibrary"))
	t.Cleanup(testutil.MustSetenv(t, "CMEC_CONFIG_DIR", "/elsewhere/.cmec"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LibraryPath != "/elsewhere/.cmeclibrary" {
		t.Errorf("expected env library path to win, got %q", cfg.LibraryPath)
	}
	if cfg.ConfigDir != "/elsewhere/.cmec" {
		t.Errorf("expected env config dir to win, got %q", cfg.ConfigDir)
	}
}

func TestLoadOverrideHooks(t *testing.T) {
	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
	t.Cleanup(testutil.MustSetenv(t, "CMEC_LIBRARY_PATH", "/env/.cmeclibrary"))

	SetLibraryPathOverride("/hook/.cmeclibrary")
	SetConfigDirOverride("/hook/.cmec")
	t.Cleanup(func() {
		SetLibraryPathOverride("")
		SetConfigDirOverride("")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The process-level hook beats the environment.
	if cfg.LibraryPath != "/hook/.cmeclibrary" {
		t.Errorf("expected hook library path to win, got %q", cfg.LibraryPath)
	}
	if cfg.ConfigDir != "/hook/.cmec" {
		t.Errorf("expected hook config dir to win, got %q", cfg.ConfigDir)
	}
}

func TestEnvironmentErrorMessage(t *testing.T) {
	err := &EnvironmentError{Reason: "no home directory"}
	if err.Error() != "no home directory" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
