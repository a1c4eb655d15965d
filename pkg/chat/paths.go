package chat

import (
	"strings"
)

// SplitPaths splits user input on commas and newlines, trimming whitespace
// and dropping empty segments.
func SplitPaths(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			paths = append(paths, f)
		}
	}
	return paths
}
