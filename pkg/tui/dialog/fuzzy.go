package dialog

import (
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// filterNames keeps the names that fuzzy-match query, best match first.
// Names with equal scores keep their original order.
func filterNames(names []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(names)
	}

	type match struct {
		name  string
		score int
	}

	pattern := []rune(query)
	var matches []match
	for _, name := range names {
		chars := util.ToChars([]byte(name))
		result, _ := algo.FuzzyMatchV1(false, false, true, &chars, pattern, false, nil)
		if result.Start >= 0 {
			matches = append(matches, match{name: name, score: result.Score})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return b.score - a.score
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
