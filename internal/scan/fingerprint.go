package scan

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Set is a fingerprint: the set of relative entry names gathered from a
// folder up to a configured depth. Nested entries are qualified with their
// parent segment ("sub/file.txt") so same-named entries at different depths
// stay distinct.
type Set map[string]struct{}

// Fingerprint gathers the depth-bounded content fingerprint of path. The
// result is deterministic for a given (path, depth) regardless of directory
// iteration order. Symlinks are excluded entirely: never followed, never
// counted. An unreadable nested subtree contributes nothing; an unreadable
// (or vanished) top-level path returns an empty set and the error.
func Fingerprint(path string, depth int) (Set, error) {
	set := make(Set)
	if err := gather(path, "", 0, depth, set); err != nil {
		return Set{}, err
	}
	return set, nil
}

func gather(dir, prefix string, level, depth int, set Set) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		name := prefix + entry.Name()
		set[name] = struct{}{}

		if entry.IsDir() && level < depth-1 {
			// Unreadable subtrees count as empty; the scan goes on.
			_ = gather(filepath.Join(dir, entry.Name()), name+"/", level+1, depth, set)
		}
	}

	return nil
}
