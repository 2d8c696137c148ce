package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FolderRecord describes one qualifying directory found during scanning.
// Records are immutable once emitted.
type FolderRecord struct {
	Path string
	Size uint64
}

type Options struct {
	MinSize    uint64
	MaxSize    uint64 // 0 means unlimited
	MinEntries int
	Depth      int
	Exclude    []string
}

// Reporter receives progress notifications and non-fatal warnings.
type Reporter interface {
	Notify(fraction float64, label string)
	Warnf(format string, args ...interface{})
}

// Scan walks every directory below the given roots and returns a record for
// each one whose transitive byte size lies within the configured bounds and
// whose depth-bounded fingerprint has at least MinEntries entries. Output
// order is walk insertion order.
//
// The walk is done twice: a cheap counting pass first, so that the second
// pass can report meaningful completion fractions.
func Scan(roots []string, opts Options, rep Reporter) ([]FolderRecord, error) {
	total := 0
	for _, root := range roots {
		n, err := countDirs(root, opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("failed to scan root %s: %w", root, err)
		}
		total += n
	}

	records := make([]FolderRecord, 0)
	processed := 0

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				warnf(rep, "cannot access %s: %v", path, err)
				return nil
			}
			if !d.IsDir() || path == root {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && Excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}

			if rep != nil && total > 0 {
				rep.Notify(float64(processed)/float64(total), path)
			}
			processed++

			size := folderSize(path, rep)
			if size < opts.MinSize || (opts.MaxSize > 0 && size > opts.MaxSize) {
				return nil
			}

			fp, fpErr := Fingerprint(path, opts.Depth)
			if fpErr != nil {
				warnf(rep, "cannot list %s: %v", path, fpErr)
				return nil
			}
			if len(fp) < opts.MinEntries {
				return nil
			}

			records = append(records, FolderRecord{Path: path, Size: size})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan root %s: %w", root, err)
		}
	}

	return records, nil
}

// countDirs counts the directories below root that the gather pass will
// visit, pruning excluded subtrees the same way.
func countDirs(root string, exclude []string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && Excluded(rel, exclude) {
			return filepath.SkipDir
		}
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// folderSize sums the sizes of all regular files transitively contained in
// path. Symlinks are never followed and never counted. Unreadable subtrees
// contribute nothing.
func folderSize(path string, rep Reporter) uint64 {
	var total uint64
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			warnf(rep, "cannot access %s: %v", p, err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			warnf(rep, "cannot stat %s: %v", p, infoErr)
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	return total
}

// Excluded reports whether a relative path matches any exclusion pattern.
// Patterns ending in "/" match directory names anywhere in the path; other
// patterns match the base name, or the full relative path when they contain
// a separator.
func Excluded(relPath string, exclusions []string) bool {
	for _, pattern := range exclusions {
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range strings.Split(relPath, string(filepath.Separator)) {
				if matched, _ := filepath.Match(dirPattern, part); matched {
					return true
				}
				if part == dirPattern {
					return true
				}
			}
		} else {
			if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
				return true
			}
			if strings.Contains(pattern, "/") {
				if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
					return true
				}
			}
		}
	}
	return false
}

func warnf(rep Reporter, format string, args ...interface{}) {
	if rep != nil {
		rep.Warnf(format, args...)
	}
}
