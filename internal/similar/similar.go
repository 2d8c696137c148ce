package similar

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Aadniz/folder-diffs/internal/scan"
)

// CandidatePair is two folders whose fingerprints met the similarity
// threshold. Immutable once produced.
type CandidatePair struct {
	A          scan.FolderRecord
	B          scan.FolderRecord
	Similarity float64
}

// CombinedSize is the total byte size of both folders.
func (p CandidatePair) CombinedSize() uint64 {
	return p.A.Size + p.B.Size
}

type Options struct {
	Depth         int
	MinSimilarity float64 // percent, 0-100
	Workers       int
}

// Reporter receives decimated progress notifications.
type Reporter interface {
	Notify(fraction float64, label string)
}

// Similarity scores two fingerprints as |intersection| / max(|a|, |b|).
// Two empty fingerprints score 0.0. Symmetric by construction.
func Similarity(a, b scan.Set) float64 {
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	if larger == 0 {
		return 0.0
	}

	small, big := a, b
	if len(small) > len(big) {
		small, big = big, small
	}
	common := 0
	for name := range small {
		if _, ok := big[name]; ok {
			common++
		}
	}

	return float64(common) / float64(larger)
}

// Compare scores every unordered pair of folders and returns the pairs whose
// similarity meets the threshold, in no particular order (the ranker
// re-establishes ordering).
//
// All n(n-1)/2 comparisons are performed; any two folders can be arbitrarily
// similar regardless of size or name, so there is no pruning. This quadratic
// cost is the scaling limit of the tool. Fingerprints are computed on demand
// per comparison, never cached, so results reflect the filesystem as it is
// at compare time. A folder that vanished since scanning fingerprints as
// empty and scores 0.0; the run never aborts for it.
//
// Progress is decimated by comparison count: with interval
// max(1, total/1_000_000), only every interval-th completion notifies, based
// on an atomically incremented counter shared across the workers.
func Compare(folders []scan.FolderRecord, opts Options, rep Reporter) []CandidatePair {
	n := len(folders)
	total := int64(n) * int64(n-1) / 2
	if total == 0 {
		return nil
	}

	interval := total / 1_000_000
	if interval < 1 {
		interval = 1
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	type job struct{ i, j int }
	jobs := make(chan job, 1024)
	results := make(chan CandidatePair, 1024)

	var completed atomic.Int64
	var group errgroup.Group

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for jb := range jobs {
				a, b := folders[jb.i], folders[jb.j]

				fpA, err := scan.Fingerprint(a.Path, opts.Depth)
				if err != nil {
					fpA = scan.Set{}
				}
				fpB, err := scan.Fingerprint(b.Path, opts.Depth)
				if err != nil {
					fpB = scan.Set{}
				}

				similarity := Similarity(fpA, fpB)

				done := completed.Add(1)
				if rep != nil && done%interval == 0 {
					rep.Notify(float64(done)/float64(total),
						fmt.Sprintf("%s <-> %s", a.Path, b.Path))
				}

				if similarity*100.0 >= opts.MinSimilarity {
					results <- CandidatePair{A: a, B: b, Similarity: similarity}
				}
			}
			return nil
		})
	}

	go func() {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				jobs <- job{i, j}
			}
		}
		close(jobs)
	}()

	go func() {
		_ = group.Wait()
		close(results)
	}()

	pairs := make([]CandidatePair, 0)
	for pair := range results {
		pairs = append(pairs, pair)
	}
	return pairs
}
