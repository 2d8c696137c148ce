package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Aadniz/folder-diffs/internal/similar"
	"github.com/Aadniz/folder-diffs/internal/units"
)

// DisplayLimit is the result count above which the console summary is
// replaced by a CSV file, unless printing is forced.
const DisplayLimit = 200

// DefaultCSVPath returns a timestamped result path in the system temp
// directory.
func DefaultCSVPath(now time.Time) string {
	return filepath.Join(os.TempDir(),
		fmt.Sprintf("folder_diffs_%s.csv", now.Format("20060102-150405")))
}

// SaveCSV writes the candidate pairs to path. The file is written to a
// temporary sibling and renamed into place, so a failure never leaves a
// partial result file behind.
func SaveCSV(pairs []similar.CandidatePair, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".folder_diffs-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"Similarity", "Folder 1", "Size 1", "Folder 2", "Size 2"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, pair := range pairs {
		record := []string{
			fmt.Sprintf("%.2f%%", pair.Similarity*100),
			pair.A.Path,
			strconv.FormatUint(pair.A.Size, 10),
			pair.B.Path,
			strconv.FormatUint(pair.B.Size, 10),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move results into place: %w", err)
	}
	return nil
}

// Print writes the console summary of ranked pairs.
func Print(w io.Writer, pairs []similar.CandidatePair) {
	for _, pair := range pairs {
		fmt.Fprintf(w, "Similarity: %.2f%%, Total Size: %s\n",
			pair.Similarity*100, units.Format(pair.CombinedSize()))
		fmt.Fprintf(w, "  Folder 1: %s\n", pair.A.Path)
		fmt.Fprintf(w, "  Folder 2: %s\n", pair.B.Path)
		fmt.Fprintln(w)
	}
}
