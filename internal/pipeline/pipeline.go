// Package pipeline chains the stages of a full run: fetch, merge, rename,
// title sync, page generation. Each stage is also reachable on its own
// through the CLI; this package owns the ordering and the summary.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/fetch"
	"github.com/vjovkovs/iconpress/internal/merge"
	"github.com/vjovkovs/iconpress/internal/page"
	"github.com/vjovkovs/iconpress/internal/rename"
	"github.com/vjovkovs/iconpress/internal/title"
)

// SrcDir is where the archive gets extracted inside the work directory.
func SrcDir(cfg *config.Config) string {
	return filepath.Join(cfg.WorkDir, "src")
}

// ArchivePath is where the downloaded zip lands.
func ArchivePath(cfg *config.Config) string {
	return filepath.Join(cfg.WorkDir, "asset-package.zip")
}

// MarkerPath is the checksum marker recording the last extracted archive.
func MarkerPath(cfg *config.Config) string {
	return filepath.Join(cfg.WorkDir, fetch.MarkerName)
}

// Fetch downloads and extracts the vendor archive into the work directory.
// When the downloaded archive hashes identically to the recorded marker the
// extraction is skipped; the extracted tree is already current. Returns the
// extraction root.
func Fetch(ctx context.Context, cfg *config.Config, log *zap.Logger) (string, error) {
	srcDir := SrcDir(cfg)
	if cfg.DryRun {
		log.Info("dry run: using existing extraction", zap.String("src", srcDir))
		return srcDir, nil
	}

	client := fetch.NewClient(fetch.Options{UserAgent: cfg.UserAgent})

	url := cfg.ArchiveURL
	if url == "" {
		var err error
		url, err = fetch.FindArchiveLink(ctx, client, cfg.PageURL)
		if err != nil {
			return "", fmt.Errorf("locate archive: %w", err)
		}
		log.Info("found archive link", zap.String("url", url))
	}

	sum, err := client.Download(ctx, url, ArchivePath(cfg))
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}

	if sum == fetch.ReadMarker(MarkerPath(cfg)) {
		log.Info("archive unchanged, skipping extraction", zap.String("sha256", sum))
		return srcDir, nil
	}

	if err := os.RemoveAll(srcDir); err != nil {
		return "", err
	}
	if err := fetch.Extract(ArchivePath(cfg), srcDir); err != nil {
		return "", err
	}
	if err := fetch.WriteMarker(MarkerPath(cfg), sum); err != nil {
		return "", err
	}
	log.Info("archive extracted", zap.String("src", srcDir), zap.String("sha256", sum))
	return srcDir, nil
}

// Run executes the full pipeline. Structural failures (missing taxonomy
// root, unreadable work directory) abort; per-file conditions surface in
// the summary counters only.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	start := time.Now()
	if cfg.DryRun {
		log.Warn("dry run: no filesystem mutation will happen")
	}

	srcDir := SrcDir(cfg)
	if !cfg.SkipFetch {
		var err error
		srcDir, err = Fetch(ctx, cfg, log)
		if err != nil {
			return err
		}
	}

	stats, err := merge.New(cfg, log).Run(ctx, srcDir)
	if err != nil {
		return err
	}

	if err := copyMarker(cfg); err != nil {
		log.Warn("checksum marker not copied", zap.Error(err))
	}

	r := rename.New(cfg, log)
	if err := r.Run(cfg.DestDir); err != nil {
		return err
	}

	updated, err := title.New(cfg, log).Run(ctx, cfg.DestDir)
	if err != nil {
		return err
	}

	if !cfg.SkipPage && !cfg.DryRun {
		if err := WritePage(cfg, log); err != nil {
			return err
		}
		if err := merge.WriteReport(stats.Snapshot(), filepath.Join(cfg.DestDir, "merge-report.json")); err != nil {
			return err
		}
	}

	log.Info("done",
		zap.Int64("copied", stats.Copied.Load()),
		zap.Int64("skipped", stats.Skipped.Load()),
		zap.Int64("merged", stats.Merged.Load()),
		zap.Int64("arch_only", stats.ArchOnly.Load()),
		zap.Int("renamed", r.Renamed),
		zap.Int("rename_collisions", r.Skipped),
		zap.Int("titles_updated", updated),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return nil
}

// WritePage renders the HTML index (and optionally the PDF catalog) for the
// destination tree.
func WritePage(cfg *config.Config, log *zap.Logger) error {
	sections, err := page.Collect(cfg.DestDir)
	if err != nil {
		return fmt.Errorf("collect page sections: %w", err)
	}

	htmlPath := filepath.Join(cfg.DestDir, "index.html")
	if err := page.WriteHTML(sections, htmlPath); err != nil {
		return err
	}
	log.Info("browse page written", zap.String("path", htmlPath), zap.Int("sections", len(sections)))

	if cfg.PDFCatalog {
		pdfPath := filepath.Join(cfg.DestDir, "catalog.pdf")
		if err := page.WritePDF(sections, pdfPath); err != nil {
			return err
		}
		log.Info("pdf catalog written", zap.String("path", pdfPath))
	}
	return nil
}

// copyMarker carries the checksum marker into the destination unchanged so
// downstream consumers can tell which archive the tree came from. No-op
// when there is no marker or in dry-run mode.
func copyMarker(cfg *config.Config) error {
	if cfg.DryRun {
		return nil
	}
	sum := fetch.ReadMarker(MarkerPath(cfg))
	if sum == "" {
		return nil
	}
	return fetch.WriteMarker(filepath.Join(cfg.DestDir, fetch.MarkerName), sum)
}
