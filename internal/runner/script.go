// SPDX-License-Identifier: BSD-3-Clause

package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/cmecmetrics/cmec-driver/internal/resolver"
)

// EnvScriptName is the environment script emitted into each entry's working
// directory.
const EnvScriptName = "cmec_run.bash"

// noneValue substitutes for unset optional paths in the emitted script,
// matching the value historically observed by driver scripts.
const noneValue = "None"

// scriptEnv is the environment exported to one driver invocation.
type scriptEnv struct {
	CodeDir      string
	ObsDir       string
	ModelDir     string
	WorkingDir   string
	ConfigDir    string
	CondaSource  string
	CondaEnvRoot string
}

// buildScript renders the cmec_run.bash contents for one plan entry: a bash
// script exporting the driver environment and invoking the driver script as
// its final statement. All paths are shell-quoted, and the result is parsed
// with mvdan.cc/sh before being returned so a malformed script is caught
// here rather than at execution time.
func buildScript(entry resolver.PlanEntry, env scriptEnv) (string, error) {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")

	exports := []struct {
		name  string
		value string
	}{
		{"CMEC_CODE_DIR", env.CodeDir},
		{"CMEC_OBS_DATA", orNone(env.ObsDir)},
		{"CMEC_MODEL_DATA", env.ModelDir},
		{"CMEC_WK_DIR", env.WorkingDir},
		{"CMEC_CONFIG_DIR", env.ConfigDir},
		{"CONDA_SOURCE", orNone(env.CondaSource)},
		{"CONDA_ENV_ROOT", orNone(env.CondaEnvRoot)},
	}
	for _, e := range exports {
		quoted, err := syntax.Quote(e.value, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote %s value: %w", e.name, err)
		}
		fmt.Fprintf(&b, "export %s=%s\n", e.name, quoted)
	}

	driver, err := syntax.Quote(entry.DriverScript, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("failed to quote driver path: %w", err)
	}
	b.WriteString(driver)
	b.WriteString("\n")

	script := b.String()
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), EnvScriptName); err != nil {
		return "", fmt.Errorf("generated environment script does not parse: %w", err)
	}
	return script, nil
}

// writeScript emits the environment script into the entry's working
// directory and marks it executable.
func writeScript(workingDir string, entry resolver.PlanEntry, env scriptEnv) (string, error) {
	script, err := buildScript(entry, env)
	if err != nil {
		return "", err
	}

	path := filepath.Join(workingDir, EnvScriptName)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func orNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}
