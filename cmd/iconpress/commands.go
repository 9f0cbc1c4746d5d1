package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/merge"
	"github.com/vjovkovs/iconpress/internal/pipeline"
	"github.com/vjovkovs/iconpress/internal/rename"
	"github.com/vjovkovs/iconpress/internal/title"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the full pipeline: fetch, merge, rename, titles, page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return pipeline.Run(cmd.Context(), &a.cfg, a.log)
		},
	}
	cmd.Flags().BoolVar(&a.cfg.SkipFetch, "skip-fetch", false, "reuse the existing extraction instead of downloading")
	cmd.Flags().BoolVar(&a.cfg.SkipPage, "skip-page", false, "do not render the browse page")
	cmd.Flags().BoolVar(&a.cfg.PDFCatalog, "pdf", false, "also render the PDF catalog")
	cmd.Flags().StringVar(&a.cfg.ArchiveURL, "archive-url", a.cfg.ArchiveURL, "direct archive URL (skips page scraping)")
	cmd.Flags().StringVar(&a.cfg.PageURL, "page-url", a.cfg.PageURL, "vendor download page to scrape")
	return cmd
}

func newFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and extract the vendor archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := pipeline.Fetch(cmd.Context(), &a.cfg, a.log)
			if err != nil {
				return err
			}
			a.log.Info("extraction ready", zap.String("src", src))
			return nil
		},
	}
	cmd.Flags().StringVar(&a.cfg.ArchiveURL, "archive-url", a.cfg.ArchiveURL, "direct archive URL (skips page scraping)")
	cmd.Flags().StringVar(&a.cfg.PageURL, "page-url", a.cfg.PageURL, "vendor download page to scrape")
	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge the extracted taxonomies into the destination tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := merge.New(&a.cfg, a.log).Run(cmd.Context(), pipeline.SrcDir(&a.cfg))
			if err != nil {
				return err
			}
			rep := stats.Snapshot()
			a.log.Info("merge complete",
				zap.Int64("copied", rep.Copied),
				zap.Int64("skipped", rep.Skipped),
				zap.Int64("merged", rep.Merged),
				zap.Int64("arch_only", rep.ArchOnly),
				zap.Strings("unmatched", rep.Unmatched))
			if a.cfg.DryRun {
				return nil
			}
			return merge.WriteReport(rep, filepath.Join(a.cfg.DestDir, "merge-report.json"))
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename",
		Short: "Normalize file and directory names in the destination tree",
		RunE: func(*cobra.Command, []string) error {
			r := rename.New(&a.cfg, a.log)
			if err := r.Run(a.cfg.DestDir); err != nil {
				return err
			}
			a.log.Info("rename complete",
				zap.Int("renamed", r.Renamed), zap.Int("collisions", r.Skipped))
			return nil
		},
	}
}

func newTitlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "Rewrite embedded SVG titles in the destination tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			updated, err := title.New(&a.cfg, a.log).Run(cmd.Context(), a.cfg.DestDir)
			if err != nil {
				return err
			}
			a.log.Info("title sync complete", zap.Int("updated", updated))
			return nil
		},
	}
}

func newPageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Render the browse page for the destination tree",
		RunE: func(*cobra.Command, []string) error {
			return pipeline.WritePage(&a.cfg, a.log)
		},
	}
	cmd.Flags().BoolVar(&a.cfg.PDFCatalog, "pdf", false, "also render the PDF catalog")
	return cmd
}
