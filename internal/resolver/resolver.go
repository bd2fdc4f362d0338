// SPDX-License-Identifier: BSD-3-Clause

// Package resolver expands user-supplied module selectors into a concrete
// execution plan.
//
// A selector is "module" or "module/configuration". Resolution consults the
// library for the module directory, loads its descriptor, and appends one
// plan entry per selected configuration. Errors are collected across all
// selectors and reported together; resolution is fully separated from
// execution (internal/runner) so a dry-run or alternative dispatcher only
// needs to consume the same ExecutionPlan value.
package resolver

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/cmecmetrics/cmec-driver/internal/library"
	"github.com/cmecmetrics/cmec-driver/pkg/descriptor"
)

// PlanEntry is one module configuration scheduled for execution.
type PlanEntry struct {
	// Module is the parent module name.
	Module string
	// Config is the configuration name, empty for single-configuration
	// modules.
	Config string
	// ModulePath is the absolute directory exported to the driver as its
	// code directory. For TOC configurations this is the directory holding
	// the configuration's settings file.
	ModulePath string
	// DriverScript is the absolute path of the executable to invoke.
	DriverScript string
	// Label is the relative working-directory label under the run's output
	// directory: the module name, or "module/config" for TOC entries.
	Label string
}

// ExecutionPlan is the ordered list of configurations to execute. Entries
// keep selector order; duplicates are preserved (a module listed twice runs
// twice).
type ExecutionPlan struct {
	Entries []PlanEntry
}

// Resolve expands selectors against the library. All selectors are
// processed even after a failure so the user sees every problem at once;
// any error aborts the run before execution. An empty resulting plan is a
// *NoDriversFoundError.
func Resolve(lib *library.Library, selectors []string) (*ExecutionPlan, error) {
	plan := &ExecutionPlan{}
	var errs []error

	for _, selector := range selectors {
		entries, err := resolveOne(lib, selector)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		plan.Entries = append(plan.Entries, entries...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(plan.Entries) == 0 {
		return nil, &NoDriversFoundError{}
	}
	return plan, nil
}

func resolveOne(lib *library.Library, selector string) ([]PlanEntry, error) {
	if err := checkSelector(selector); err != nil {
		return nil, err
	}

	parent := selector
	config := ""
	if i := strings.Index(selector, "/"); i >= 0 {
		parent, config = selector[:i], selector[i+1:]
	}

	dir, ok := lib.Find(parent)
	if !ok {
		return nil, &library.ModuleNotFoundError{Name: parent}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	mod, err := descriptor.Load(dir)
	if err != nil {
		return nil, err
	}

	switch mod.Kind {
	case descriptor.KindSettings:
		if config != "" {
			return nil, &SingleConfigError{Module: parent, Config: config}
		}
		return []PlanEntry{{
			Module:       mod.Settings.Name(),
			ModulePath:   dir,
			DriverScript: mod.Settings.DriverPath(dir),
			Label:        mod.Settings.Name(),
		}}, nil

	case descriptor.KindTOC:
		var entries []PlanEntry
		for _, e := range mod.TOC.Entries() {
			if config != "" && config != e.Name {
				continue
			}
			entries = append(entries, PlanEntry{
				Module:       mod.TOC.Name(),
				Config:       e.Name,
				ModulePath:   filepath.Dir(e.SettingsPath),
				DriverScript: e.Settings.DriverPath(dir),
				Label:        mod.TOC.Name() + "/" + e.Name,
			})
		}
		if config != "" && len(entries) == 0 {
			return nil, &ConfigNotFoundError{Module: parent, Config: config}
		}
		return entries, nil

	default:
		return nil, &descriptor.NoDescriptorError{Dir: dir}
	}
}

// checkSelector enforces the selector grammar: non-empty, no trailing
// slash, characters restricted to alphanumerics, underscore and slash.
func checkSelector(selector string) error {
	if selector == "" {
		return &SelectorError{Selector: selector, Reason: "selector is empty"}
	}
	if strings.HasSuffix(selector, "/") {
		return &SelectorError{Selector: selector, Reason: "selector must not end in \"/\""}
	}
	for _, r := range selector {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '/':
		default:
			return &SelectorError{Selector: selector, Reason: "only alphanumeric characters, \"_\" and \"/\" are allowed"}
		}
	}
	return nil
}
