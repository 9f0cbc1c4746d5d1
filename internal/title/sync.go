// Package title rewrites the embedded <title> text of merged SVG files with
// the display-label rule set.
package title

import (
	"context"
	"os"
	"regexp"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/fsutil"
	"github.com/vjovkovs/iconpress/internal/naming"
)

// First <title> element only; vendor SVGs carry exactly one.
var reTitle = regexp.MustCompile(`<title>([^<]*)</title>`)

// Syncer updates embedded titles under the destination tree.
type Syncer struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Syncer {
	return &Syncer{cfg: cfg, log: log}
}

// Run walks root for SVG files and rewrites any title whose cleaned form
// differs from the stored text. Files are independent, so updates proceed
// concurrently with no ordering guarantee. Unreadable or title-less files
// are left untouched. Returns the number of files updated.
func (s *Syncer) Run(ctx context.Context, root string) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	var updated atomic.Int64
	for path := range fsutil.FilesWithExt(root, "svg") {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if s.syncFile(path) {
				updated.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	return int(updated.Load()), err
}

// syncFile rewrites one file's title in place. Reports whether the file
// changed (or would change, under dry-run).
func (s *Syncer) syncFile(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		// Same policy as a missing title: skip, not an error.
		s.log.Debug("unreadable file skipped", zap.String("path", path), zap.Error(err))
		return false
	}

	m := reTitle.FindSubmatchIndex(b)
	if m == nil {
		return false
	}
	current := string(b[m[2]:m[3]])
	cleaned := naming.CleanTitle(current)
	if cleaned == current {
		return false
	}

	if s.cfg.DryRun {
		s.log.Debug("would rewrite title",
			zap.String("path", path), zap.String("from", current), zap.String("to", cleaned))
		return true
	}

	out := append([]byte{}, b[:m[2]]...)
	out = append(out, cleaned...)
	out = append(out, b[m[3]:]...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		s.log.Warn("title rewrite failed", zap.String("path", path), zap.Error(err))
		return false
	}
	s.log.Debug("title rewritten",
		zap.String("path", path), zap.String("from", current), zap.String("to", cleaned))
	return true
}
