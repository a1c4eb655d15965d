package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterNames(t *testing.T) {
	t.Parallel()

	names := []string{"read_file", "write_file", "search_memory"}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query keeps order", query: "", want: names},
		{name: "blank query keeps order", query: "  ", want: names},
		{name: "substring", query: "memory", want: []string{"search_memory"}},
		{name: "case insensitive", query: "WRITE", want: []string{"write_file"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filterNames(names, tt.query))
		})
	}
}

func TestFilterNamesIsFuzzy(t *testing.T) {
	t.Parallel()

	got := filterNames([]string{"read_file", "write_file", "search_memory"}, "rf")
	assert.ElementsMatch(t, []string{"read_file", "write_file"}, got)
}
