// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gmm-app/gmm/internal/doctor"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Render prints the value to the command's output in the requested format.
// An unknown format is a fatal usage error.
func Render(cmd *cobra.Command, v interface{}, format string) {
	var output []byte
	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		output, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		output, err = yaml.Marshal(v)
	default:
		err = errorx.IllegalFormat.New("unsupported output format: %s", format)
	}
	if err != nil {
		doctor.CheckErr(cmd.Context(), err)
	}

	cmd.Println(string(output))
}
