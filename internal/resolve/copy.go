package resolve

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyTree recursively copies the tree at src on top of dst. Files already
// present under dst keep their content unless src has an entry with the same
// relative path, in which case src's version overwrites it. Symlinks are
// skipped entirely. Nothing under src or dst is ever removed.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			info, err := os.Lstat(target)
			switch {
			case err == nil && info.IsDir():
				return nil
			case err == nil:
				return fmt.Errorf("cannot merge: %s exists as a file", target)
			case os.IsNotExist(err):
				srcInfo, infoErr := d.Info()
				if infoErr != nil {
					return infoErr
				}
				return os.MkdirAll(target, srcInfo.Mode().Perm())
			default:
				return err
			}
		}

		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target, d)
	})
}

func copyFile(src, dst string, d fs.DirEntry) error {
	if info, err := os.Lstat(dst); err == nil && info.IsDir() {
		return fmt.Errorf("cannot merge: %s exists as a directory", dst)
	}

	srcInfo, err := d.Info()
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
