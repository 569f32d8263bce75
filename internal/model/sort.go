package model

import (
	"fmt"
	"strings"
)

// SortMode selects how discovered projects are ordered before selection.
type SortMode int

const (
	// SortAlphabetical orders projects by path, ascending.
	SortAlphabetical SortMode = iota

	// SortRecent orders projects by last recorded access, newest first.
	SortRecent
)

// ParseSortMode parses a configured sort mode string.
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "alphabetical":
		return SortAlphabetical, nil
	case "recent":
		return SortRecent, nil
	}

	return SortAlphabetical, fmt.Errorf("unknown sort mode %q (accepted: alphabetical, recent)", value)
}

func (m SortMode) String() string {
	if m == SortRecent {
		return "recent"
	}

	return "alphabetical"
}
