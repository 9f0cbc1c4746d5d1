// Package rename applies the filename rules to the merged destination tree,
// depth-first so directory contents settle before the directory itself
// moves.
package rename

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/naming"
)

// Renamer rewrites file and directory names under the destination tree.
type Renamer struct {
	cfg *config.Config
	log *zap.Logger

	// Renamed and Skipped count performed renames and collision skips.
	Renamed int
	Skipped int
}

func New(cfg *config.Config, log *zap.Logger) *Renamer {
	return &Renamer{cfg: cfg, log: log}
}

// Run normalizes every name under root. Children are renamed strictly
// before their parent: renaming a directory first would invalidate every
// path beneath it. Per-entry failures are logged and skipped; only an
// unreadable directory listing aborts. A root that does not exist is an
// empty tree under dry-run, where the merge stage never created it.
func (r *Renamer) Run(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if r.cfg.DryRun && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", root, err)
	}

	// Collision detection runs against the directory's final name set,
	// not on-disk state, so dry-run counts match a real run. Cleaned
	// names are fixpoints of the rule set, so an entry whose name is
	// already some entry's cleaned form never moves; seeding those up
	// front makes the outcome independent of walk order.
	cleaned := make([]string, len(entries))
	claimed := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.IsDir() {
			cleaned[i] = naming.CleanDirName(e.Name())
		} else {
			cleaned[i] = naming.CleanFileName(e.Name())
		}
		if cleaned[i] == e.Name() {
			claimed[e.Name()] = true
		}
	}

	for i, e := range entries {
		path := filepath.Join(root, e.Name())
		if e.IsDir() {
			if err := r.Run(path); err != nil {
				return err
			}
		}
		r.renameEntry(path, cleaned[i], claimed)
	}
	return nil
}

// renameEntry moves path to its cleaned name inside the same directory,
// claiming the name so later entries cleaning to it are skipped. Earlier
// renames stay in place, failure isolation is per entry.
func (r *Renamer) renameEntry(path, cleaned string, claimed map[string]bool) {
	name := filepath.Base(path)
	if cleaned == name {
		return
	}

	if claimed[cleaned] {
		r.Skipped++
		r.log.Warn("rename collision, kept original name",
			zap.String("path", path), zap.String("target", cleaned))
		claimed[name] = true
		return
	}
	claimed[cleaned] = true

	if r.cfg.DryRun {
		r.Renamed++
		r.log.Debug("would rename", zap.String("path", path), zap.String("to", cleaned))
		return
	}
	if err := os.Rename(path, filepath.Join(filepath.Dir(path), cleaned)); err != nil {
		r.Skipped++
		r.log.Warn("rename failed", zap.String("path", path), zap.Error(err))
		return
	}
	r.Renamed++
	r.log.Debug("renamed", zap.String("path", path), zap.String("to", cleaned))
}
