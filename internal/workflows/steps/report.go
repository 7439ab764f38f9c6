// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"os"
	"path/filepath"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport writes the workflow execution report as YAML to the
// given path. Report persistence is best effort; failures are logged only.
var PrintWorkflowReport = func(report *automa.Report, path string) {
	b, err := yaml.Marshal(report)
	if err != nil {
		logx.As().Warn().Err(err).Msg("Failed to marshal workflow report")
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logx.As().Warn().Err(err).Msg("Failed to create workflow report directory")
		return
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		logx.As().Warn().Err(err).Str("path", path).Msg("Failed to write workflow report")
	}
}
