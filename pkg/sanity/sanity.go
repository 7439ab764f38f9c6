// SPDX-License-Identifier: Apache-2.0

package sanity

import (
	"net/url"
	"strings"

	"github.com/joomcode/errorx"
)

// DirName maps an arbitrary display name onto a filesystem-safe path
// component. Characters outside [A-Za-z0-9_-] become underscores so distinct
// names stay distinguishable instead of collapsing.
func DirName(s string) (string, error) {
	sb := []byte(s)
	for i, b := range sb {
		switch {
		case 'a' <= b && b <= 'z',
			'A' <= b && b <= 'Z',
			'0' <= b && b <= '9',
			b == '_', b == '-':
		default:
			sb[i] = '_'
		}
	}

	out := string(sb)
	if strings.Trim(out, "_") == "" {
		return "", errorx.IllegalArgument.New("name %q has no usable characters", s)
	}
	return out, nil
}

// ValidateURL checks that the given string is an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return errorx.IllegalArgument.New("url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid url: %s", raw)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errorx.IllegalArgument.New("unsupported url scheme %q in %s", u.Scheme, raw)
	}
	if u.Host == "" {
		return errorx.IllegalArgument.New("url has no host: %s", raw)
	}
	return nil
}
