// SPDX-License-Identifier: Apache-2.0

// Package picker implements the interactive directory prompt used when the
// game install cannot be found automatically.
package picker

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/gmm-app/gmm/internal/core"
)

// Terminal prompts for a directory path on the terminal.
type Terminal struct{}

// New creates a terminal picker.
func New() *Terminal {
	return &Terminal{}
}

// runFormFunc is swapped in tests.
var runFormFunc = func(form *huh.Form) error {
	return form.Run()
}

// PickDirectory asks for a directory path. An aborted form (Esc or Ctrl+C)
// and an empty submission both yield core.PickerCancelled.
func (t *Terminal) PickDirectory(ctx context.Context, title string) (string, error) {
	var dir string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Path to the folder containing " + core.AnchorExecutable).
				Value(&dir),
		),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", core.PickerCancelled.New("directory selection aborted")
	}
	if err != nil {
		return "", err
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", core.PickerCancelled.New("no directory entered")
	}
	return dir, nil
}
