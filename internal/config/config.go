// SPDX-License-Identifier: BSD-3-Clause

// Package config handles driver configuration and path resolution.
//
// The library catalog path and the user config directory are resolved here
// and injected into the packages that use them, so tests can point the
// driver at a temporary location without mutating the process environment.
// Overrides are applied in order: test hook, CMEC_* environment variable
// (via Viper), home-directory default.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "cmec-driver"
	// LibraryFileName is the catalog file name inside the home directory.
	LibraryFileName = ".cmeclibrary"
	// ConfigDirName is the per-user config directory inside the home
	// directory.
	ConfigDirName = ".cmec"
	// UserConfigFileName is the aggregated module parameter file inside the
	// config directory.
	UserConfigFileName = "cmec.json"
)

// Config carries the resolved driver settings for one command invocation.
type Config struct {
	// LibraryPath is the catalog file location.
	LibraryPath string `mapstructure:"library_path"`
	// ConfigDir is the directory holding cmec.json.
	ConfigDir string `mapstructure:"config_dir"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Test override hooks, set via the Set*Override functions.
var (
	libraryPathOverride string
	configDirOverride   string
)

// SetLibraryPathOverride forces the catalog path for this process. Pass ""
// to clear. Intended for tests and the --library flag.
func SetLibraryPathOverride(path string) { libraryPathOverride = path }

// SetConfigDirOverride forces the config directory for this process. Pass ""
// to clear.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// EnvironmentError is an unusable execution environment, e.g. no home
// directory can be determined for catalog placement.
type EnvironmentError struct {
	// Reason describes what could not be resolved.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

// Unwrap returns the underlying error, if any.
func (e *EnvironmentError) Unwrap() error { return e.Err }

// Load resolves the driver configuration from defaults and CMEC_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CMEC")
	v.AutomaticEnv()

	v.SetDefault("library_path", "")
	v.SetDefault("config_dir", "")
	v.SetDefault("verbose", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if libraryPathOverride != "" {
		cfg.LibraryPath = libraryPathOverride
	}
	if configDirOverride != "" {
		cfg.ConfigDir = configDirOverride
	}

	if cfg.LibraryPath == "" {
		home, err := homeDir()
		if err != nil {
			return nil, err
		}
		cfg.LibraryPath = filepath.Join(home, LibraryFileName)
	}
	if cfg.ConfigDir == "" {
		home, err := homeDir()
		if err != nil {
			return nil, err
		}
		cfg.ConfigDir = filepath.Join(home, ConfigDirName)
	}

	return &cfg, nil
}

// UserConfigPath returns the cmec.json location for this configuration.
func (c *Config) UserConfigPath() string {
	return filepath.Join(c.ConfigDir, UserConfigFileName)
}

// homeDir resolves the user's home directory from the environment, falling
// back to the system user database when the variable is unset.
func homeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}

	u, err := user.Current()
	if err != nil {
		return "", &EnvironmentError{Reason: "unable to resolve home directory for " + LibraryFileName, Err: err}
	}
	if u.HomeDir == "" {
		return "", &EnvironmentError{Reason: "user database entry has no home directory"}
	}
	return u.HomeDir, nil
}
