package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandLocations expands file glob patterns into a deduplicated list of
// locations. URLs and "-" are passed through unchanged. Patterns that match
// nothing are kept as literal paths so opening them reports a clear error.
// Input order is preserved; the matches of a single glob are sorted.
func ExpandLocations(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(loc string) {
		if !seen[loc] {
			seen[loc] = true
			result = append(result, loc)
		}
	}

	for _, pattern := range patterns {
		if IsURL(pattern) || pattern == Stdin {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
