package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Aadniz/folder-diffs/internal/scan"
	"github.com/Aadniz/folder-diffs/internal/similar"
)

func samplePairs() []similar.CandidatePair {
	return []similar.CandidatePair{
		{
			A:          scan.FolderRecord{Path: "/data/a", Size: 2048},
			B:          scan.FolderRecord{Path: "/data/b", Size: 1024},
			Similarity: 0.75,
		},
		{
			A:          scan.FolderRecord{Path: "/data/c", Size: 10},
			B:          scan.FolderRecord{Path: "/data/d", Size: 20},
			Similarity: 0.5,
		},
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := SaveCSV(samplePairs(), path); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open results: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}

	header := []string{"Similarity", "Folder 1", "Size 1", "Folder 2", "Size 2"}
	for i, want := range header {
		if records[0][i] != want {
			t.Errorf("Header[%d]: expected %q, got %q", i, want, records[0][i])
		}
	}

	first := records[1]
	if first[0] != "75.00%" || first[1] != "/data/a" || first[2] != "2048" ||
		first[3] != "/data/b" || first[4] != "1024" {
		t.Errorf("Unexpected first row: %v", first)
	}
}

func TestSaveCSV_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	if err := SaveCSV(samplePairs(), path); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "results.csv" {
		t.Errorf("Expected only results.csv in %s, got %v", dir, entries)
	}
}

func TestSaveCSV_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "results.csv")
	if err := SaveCSV(samplePairs(), path); err == nil {
		t.Error("SaveCSV should fail when the target directory does not exist")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No partial file may be left behind on failure")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, samplePairs())

	out := buf.String()
	if !strings.Contains(out, "Similarity: 75.00%") {
		t.Errorf("Output missing similarity line:\n%s", out)
	}
	if !strings.Contains(out, "Total Size: 3.00 KB") {
		t.Errorf("Output missing combined size:\n%s", out)
	}
	if !strings.Contains(out, "Folder 1: /data/a") || !strings.Contains(out, "Folder 2: /data/b") {
		t.Errorf("Output missing folder paths:\n%s", out)
	}
}
