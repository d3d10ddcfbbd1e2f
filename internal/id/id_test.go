package id

import (
	"sort"
	"testing"
)

func TestNewUniqueAndSorted(t *testing.T) {
	const n = 1000

	ids := make([]string, n)
	seen := make(map[string]bool, n)
	for i := range ids {
		ids[i] = New()
		if len(ids[i]) != 26 {
			t.Fatalf("ulid length = %d, want 26", len(ids[i]))
		}
		if seen[ids[i]] {
			t.Fatalf("duplicate id %s", ids[i])
		}
		seen[ids[i]] = true
	}

	if !sort.StringsAreSorted(ids) {
		t.Fatal("ids generated in sequence are not lexicographically sorted")
	}
}
