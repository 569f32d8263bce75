// Package domain holds the discovery resolver, the recency cache and the
// switch workflow that composes them.
package domain

import (
	"errors"
	"path/filepath"
	"strings"

	m "tps.dev/pkg/tps/internal/model"
)

// Normalize expands a user-supplied path into an absolute one. A leading
// "~" or "~/" refers to home; everything else is made absolute against
// the working directory.
func Normalize(raw, home string) (m.Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty path")
	}

	if trimmed == "~" {
		return m.Path(home), nil
	}

	if rest, ok := strings.CutPrefix(trimmed, "~/"); ok {
		return m.Path(filepath.Join(home, rest)), nil
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// NormalizeAll expands every path in raw, in order.
func NormalizeAll(raw []string, home string) ([]m.Path, error) {
	paths := make([]m.Path, 0, len(raw))

	for _, r := range raw {
		p, err := Normalize(r, home)
		if err != nil {
			return nil, err
		}

		paths = append(paths, p)
	}

	return paths, nil
}
