// Package fsutil provides the lazy directory-walk sequence shared by the
// title-sync and page stages.
package fsutil

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Files yields every regular file under root, one path at a time, in
// lexical order. Traversal errors are yielded alongside the offending path
// so the consumer decides whether to skip or stop; breaking out of the
// range stops the walk without visiting the rest of the tree.
func Files(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// FilesWithExt yields files under root whose extension matches ext
// (case-insensitive, leading dot optional). Traversal errors are skipped;
// a partially unreadable tree yields whatever was reachable.
func FilesWithExt(root, ext string) iter.Seq[string] {
	ext = "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	return func(yield func(string) bool) {
		for path, err := range Files(root) {
			if err != nil {
				continue
			}
			if strings.ToLower(filepath.Ext(path)) != ext {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// FindDirByPrefix returns the first directory entry under parent whose name
// starts with prefix, in lexical order. ok is false when nothing matches.
func FindDirByPrefix(parent, prefix string) (string, bool) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			return filepath.Join(parent, e.Name()), true
		}
	}
	return "", false
}
