// Package merge walks the two source taxonomies and copies matching icon
// files into the unified destination tree. Categories merge concurrently;
// within a category a small worker pool drains a shared task cursor.
package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/fsutil"
	"github.com/vjovkovs/iconpress/internal/taxonomy"
)

// Merger copies filtered icon files from the extracted archive into the
// destination tree.
type Merger struct {
	cfg   *config.Config
	log   *zap.Logger
	stats *Stats
}

func New(cfg *config.Config, log *zap.Logger) *Merger {
	return &Merger{cfg: cfg, log: log, stats: &Stats{}}
}

// Run merges the extracted tree under srcRoot into cfg.DestDir and returns
// the run statistics. A missing taxonomy root is fatal and aborts before
// any write; everything past that point degrades to counters and warnings.
func (m *Merger) Run(ctx context.Context, srcRoot string) (*Stats, error) {
	archRoot, ok := findRoot(srcRoot, m.cfg.ArchRootMarker)
	if !ok {
		return nil, fmt.Errorf("architecture taxonomy root %q not found under %s", m.cfg.ArchRootMarker, srcRoot)
	}
	resRoot, ok := findRoot(srcRoot, m.cfg.ResRootMarker)
	if !ok {
		return nil, fmt.Errorf("resource taxonomy root %q not found under %s", m.cfg.ResRootMarker, srcRoot)
	}

	archCats, err := taxonomy.Scan(archRoot, m.cfg.ArchPrefix)
	if err != nil {
		return nil, err
	}
	resCats, err := taxonomy.Scan(resRoot, m.cfg.ResPrefix)
	if err != nil {
		return nil, err
	}

	aliases := taxonomy.BuildAliases(archCats, resCats, m.cfg.AliasOverrides)
	m.stats.Unmatched = aliases.Unmatched
	for _, name := range aliases.Unmatched {
		if m.cfg.TolerateUnmatched {
			m.log.Debug("no resource counterpart", zap.String("category", name))
		} else {
			m.log.Warn("no resource counterpart", zap.String("category", name))
		}
	}

	resBySlug := make(map[string]taxonomy.Category, len(resCats))
	for _, c := range resCats {
		resBySlug[c.Slug] = c
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)
	for _, cat := range archCats {
		if cat.Name == m.cfg.GeneralCategory {
			g.Go(func() error { return m.mergeGeneral(gctx, cat) })
			continue
		}
		g.Go(func() error { return m.mergeCategory(gctx, cat, aliases, resBySlug) })
	}
	if err := g.Wait(); err != nil {
		return m.stats, err
	}

	if err := m.copyGroupIcons(ctx, srcRoot); err != nil {
		return m.stats, err
	}
	if err := m.copyCategoryIcons(ctx, srcRoot); err != nil {
		return m.stats, err
	}
	return m.stats, nil
}

// Stats exposes the accumulating counters; read it only after Run returns.
func (m *Merger) Stats() *Stats { return m.stats }

// mergeCategory copies one architecture category plus its aliased resource
// counterpart into dest/<raw category name>. Names are left unnormalized
// here; the rename stage owns cleanup.
func (m *Merger) mergeCategory(ctx context.Context, cat taxonomy.Category, aliases *taxonomy.Aliases, resBySlug map[string]taxonomy.Category) error {
	files := m.filteredFiles(filepath.Join(cat.Dir, m.cfg.SizeLabel))

	if resSlug, ok := aliases.Resolve(cat.Slug); ok {
		if res, ok := resBySlug[resSlug]; ok {
			files = append(files, m.filteredFiles(res.Dir)...)
			m.stats.Merged.Add(1)
		}
	} else {
		m.stats.ArchOnly.Add(1)
	}

	if len(files) == 0 {
		m.log.Debug("category has no matching files", zap.String("category", cat.Name))
		return nil
	}
	return m.copyBatch(ctx, filepath.Join(m.cfg.DestDir, cat.Name), files)
}

// mergeGeneral splits the generic icon set into the light and dark
// destination roots. The set has no per-size subdirectory; classification
// is a case-insensitive "dark" substring test on the path below the
// category directory.
func (m *Merger) mergeGeneral(ctx context.Context, cat taxonomy.Category) error {
	var light, dark []string
	for path, err := range fsutil.Files(cat.Dir) {
		if err != nil {
			m.log.Warn("unreadable entry skipped", zap.String("path", path), zap.Error(err))
			continue
		}
		if !m.cfg.FormatAllowed(filepath.Ext(path)) {
			continue
		}
		rel, _ := filepath.Rel(cat.Dir, path)
		if strings.Contains(strings.ToLower(rel), "dark") {
			dark = append(dark, path)
		} else {
			light = append(light, path)
		}
	}

	if err := m.copyBatch(ctx, filepath.Join(m.cfg.DestDir, m.cfg.LightDirName), light); err != nil {
		return err
	}
	return m.copyBatch(ctx, filepath.Join(m.cfg.DestDir, m.cfg.DarkDirName), dark)
}

// copyGroupIcons passes the grouping/logo set through verbatim: no size or
// format filter, no dedup.
func (m *Merger) copyGroupIcons(ctx context.Context, srcRoot string) error {
	root, ok := findRoot(srcRoot, m.cfg.GroupRootMarker)
	if !ok {
		m.log.Debug("no group icon root", zap.String("marker", m.cfg.GroupRootMarker))
		return nil
	}
	var files []string
	for path, err := range fsutil.Files(root) {
		if err != nil {
			m.log.Warn("unreadable entry skipped", zap.String("path", path), zap.Error(err))
			continue
		}
		files = append(files, path)
	}
	return m.copyBatch(ctx, filepath.Join(m.cfg.DestDir, m.cfg.GroupDirName), files)
}

// copyCategoryIcons flattens the category-level icon set, filtered by size
// and format, deduplicated by destination filename: the first occurrence in
// walk order wins.
func (m *Merger) copyCategoryIcons(ctx context.Context, srcRoot string) error {
	root, ok := findRoot(srcRoot, m.cfg.CategoryRootMarker)
	if !ok {
		m.log.Debug("no category icon root", zap.String("marker", m.cfg.CategoryRootMarker))
		return nil
	}
	seen := map[string]bool{}
	var files []string
	for path, err := range fsutil.Files(root) {
		if err != nil {
			m.log.Warn("unreadable entry skipped", zap.String("path", path), zap.Error(err))
			continue
		}
		if !m.cfg.FormatAllowed(filepath.Ext(path)) || !hasSizeLabel(path, m.cfg.SizeLabel) {
			continue
		}
		base := filepath.Base(path)
		if seen[base] {
			m.stats.Skipped.Add(1)
			continue
		}
		seen[base] = true
		files = append(files, path)
	}
	return m.copyBatch(ctx, filepath.Join(m.cfg.DestDir, m.cfg.CategoryDirName), files)
}

// filteredFiles lists the regular files of dir passing the format and
// size-label filter, sorted for deterministic copy order. A missing dir
// yields nil; categories without the target size are a normal outcome.
func (m *Merger) filteredFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !m.cfg.FormatAllowed(filepath.Ext(e.Name())) || !hasSizeLabel(e.Name(), m.cfg.SizeLabel) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files
}

// copyBatch copies files into dest on a bounded worker pool. Workers pull
// task indexes from a shared atomic cursor; the read-and-increment must be
// a single atomic add or two workers could claim the same file.
func (m *Merger) copyBatch(ctx context.Context, dest string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	if !m.cfg.DryRun {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dest, err)
		}
	}

	workers := m.cfg.Workers
	if workers > len(files) {
		workers = len(files)
	}

	var cursor atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := int(cursor.Add(1)) - 1
				if i >= len(files) {
					return nil
				}
				m.copyOne(files[i], filepath.Join(dest, filepath.Base(files[i])))
			}
		})
	}
	return g.Wait()
}

// copyOne copies src to dst with an exclusive create. An already-existing
// destination is a skip, never an overwrite.
func (m *Merger) copyOne(src, dst string) {
	if m.cfg.DryRun {
		if _, err := os.Stat(dst); err == nil {
			m.stats.Skipped.Add(1)
			m.log.Warn("duplicate destination, skipped", zap.String("dst", dst))
			return
		}
		m.stats.Copied.Add(1)
		m.log.Debug("would copy", zap.String("src", src), zap.String("dst", dst))
		return
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			m.stats.Skipped.Add(1)
			m.log.Warn("duplicate destination, skipped", zap.String("dst", dst))
			return
		}
		m.stats.Skipped.Add(1)
		m.log.Warn("copy failed", zap.String("dst", dst), zap.Error(err))
		return
	}

	in, err := os.Open(src)
	if err != nil {
		out.Close()
		os.Remove(dst)
		m.stats.Skipped.Add(1)
		m.log.Warn("copy failed", zap.String("src", src), zap.Error(err))
		return
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		m.stats.Skipped.Add(1)
		m.log.Warn("copy failed", zap.String("src", src), zap.Error(err))
		return
	}
	if err := out.Close(); err != nil {
		m.stats.Skipped.Add(1)
		m.log.Warn("copy failed", zap.String("dst", dst), zap.Error(err))
		return
	}
	m.stats.Copied.Add(1)
}

// hasSizeLabel reports whether the file's stem carries the target size as
// its trailing token, scale markers aside ("Name_48", "Name-48@5x").
func hasSizeLabel(name, size string) bool {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if i := strings.IndexByte(stem, '@'); i >= 0 {
		stem = stem[:i]
	}
	return strings.HasSuffix(stem, "_"+size) || strings.HasSuffix(stem, "-"+size)
}

// findRoot locates the directory whose name starts with marker, looking at
// root itself, its children, and one nested level down. Vendor archives
// sometimes wrap everything in a single dated top-level folder.
func findRoot(root, marker string) (string, bool) {
	if strings.HasPrefix(filepath.Base(root), marker) {
		return root, true
	}
	if dir, ok := fsutil.FindDirByPrefix(root, marker); ok {
		return dir, true
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if dir, ok := fsutil.FindDirByPrefix(filepath.Join(root, e.Name()), marker); ok {
			return dir, true
		}
	}
	return "", false
}
