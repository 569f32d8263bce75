package domain

import (
	"sort"

	m "tps.dev/pkg/tps/internal/model"
)

// Rank orders projects in place for selection. Alphabetical mode sorts
// by path ascending; recent mode sorts by last access descending, with
// path order as the tie-break so equal timestamps stay deterministic.
func Rank(projects []m.Project, mode m.SortMode, cache *AccessCache) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i].Path, projects[j].Path

		if mode == m.SortRecent && cache != nil {
			if cache.MoreRecent(a, b) {
				return true
			}
			if cache.MoreRecent(b, a) {
				return false
			}
		}

		return a < b
	})
}
