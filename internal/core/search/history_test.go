package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_Commit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		seed    []string
		commits []string
		want    []string
	}{
		{
			name:    "prepends",
			commits: []string{"a", "b"},
			want:    []string{"b", "a"},
		},
		{
			name:    "repeat of most recent is not duplicated",
			commits: []string{"x", "x"},
			want:    []string{"x"},
		},
		{
			name:    "existing entry is promoted",
			seed:    []string{"a", "b", "c"},
			commits: []string{"c"},
			want:    []string{"c", "a", "b"},
		},
		{
			name:    "cap evicts oldest",
			limit:   3,
			seed:    []string{"c", "b", "a"},
			commits: []string{"d"},
			want:    []string{"d", "c", "b"},
		},
		{
			name:    "blank is ignored",
			seed:    []string{"a"},
			commits: []string{"", "  "},
			want:    []string{"a"},
		},
		{
			name:    "commit is trimmed",
			commits: []string{"  padded  "},
			want:    []string{"padded"},
		},
		{
			name:  "seed is deduped and capped",
			limit: 2,
			seed:  []string{"a", "a", "", "b", "c"},
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.limit, tt.seed)
			for _, c := range tt.commits {
				h.Commit(c)
			}
			got := h.Entries()
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistory_DefaultLimit(t *testing.T) {
	h := NewHistory(0, nil)
	for _, q := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		h.Commit(q)
	}
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, h.Entries())
}

func TestHistory_CommitReportsChange(t *testing.T) {
	h := NewHistory(5, nil)

	assert.True(t, h.Commit("a"))
	assert.False(t, h.Commit("a"))
	assert.True(t, h.Commit("b"))
	assert.True(t, h.Commit("a"))
}

func TestHistory_CommitTrimsQuery(t *testing.T) {
	h := NewHistory(5, nil)

	assert.True(t, h.Commit("  rust "))
	assert.False(t, h.Commit("rust"))
	assert.False(t, h.Commit("   "))
	assert.Equal(t, []string{"rust"}, h.Entries())
}

func TestHistory_Remove(t *testing.T) {
	h := NewHistory(5, []string{"a", "b"})

	assert.True(t, h.Remove("a"))
	assert.False(t, h.Remove("a"))
	assert.False(t, h.Remove("B"))
	assert.Equal(t, []string{"b"}, h.Entries())
}

func TestHistory_EntriesIsACopy(t *testing.T) {
	h := NewHistory(5, []string{"a"})

	e := h.Entries()
	e[0] = "z"

	assert.Equal(t, []string{"a"}, h.Entries())
}
