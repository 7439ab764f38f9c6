// SPDX-License-Identifier: Apache-2.0

// Package launch opens URLs in the user's default browser.
package launch

import (
	"os/exec"
	"runtime"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/gmm-app/gmm/pkg/sanity"
)

// startCommandFunc is swapped in tests.
var startCommandFunc = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open launches the platform's URL handler for the given http(s) URL without
// waiting for it. The browser process outlives this one.
func Open(rawURL string) error {
	if err := sanity.ValidateURL(rawURL); err != nil {
		return errorx.IllegalArgument.Wrap(err, "refusing to open %q", rawURL)
	}

	var name string
	var args []string
	switch runtime.GOOS {
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", rawURL}
	case "darwin":
		name = "open"
		args = []string{rawURL}
	default:
		name = "xdg-open"
		args = []string{rawURL}
	}

	if err := startCommandFunc(name, args...); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to open %s", rawURL)
	}

	logx.As().Debug().Str("url", rawURL).Msg("Opened external link")
	return nil
}
