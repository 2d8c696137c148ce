package rank

import (
	"fmt"
	"sort"

	"github.com/Aadniz/folder-diffs/internal/similar"
)

// Mode selects the primary ordering of candidate pairs.
type Mode string

const (
	BySimilarity Mode = "similarity"
	BySize       Mode = "size"
	ByName       Mode = "name"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case BySimilarity, BySize, ByName:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want similarity, size or name)", s)
	}
}

// Sort orders pairs deterministically. Every mode falls through a full key
// chain ending in the two paths, so distinct path pairs never tie.
func Sort(pairs []similar.CandidatePair, mode Mode) {
	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		switch mode {
		case BySize:
			if a.CombinedSize() != b.CombinedSize() {
				return a.CombinedSize() > b.CombinedSize()
			}
			if a.Similarity != b.Similarity {
				return a.Similarity > b.Similarity
			}
			if a.A.Path != b.A.Path {
				return a.A.Path < b.A.Path
			}
			return a.B.Path < b.B.Path

		case ByName:
			if a.A.Path != b.A.Path {
				return a.A.Path < b.A.Path
			}
			if a.B.Path != b.B.Path {
				return a.B.Path < b.B.Path
			}
			if a.Similarity != b.Similarity {
				return a.Similarity > b.Similarity
			}
			return a.CombinedSize() > b.CombinedSize()

		default: // BySimilarity
			if a.Similarity != b.Similarity {
				return a.Similarity > b.Similarity
			}
			if a.CombinedSize() != b.CombinedSize() {
				return a.CombinedSize() > b.CombinedSize()
			}
			if a.A.Path != b.A.Path {
				return a.A.Path < b.A.Path
			}
			return a.B.Path < b.B.Path
		}
	})
}
