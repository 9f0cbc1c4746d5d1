package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/logging"
)

// app carries the resolved configuration and logger into the subcommands.
type app struct {
	cfg config.Config
	log *zap.Logger

	cfgPath string
	formats string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "iconpress",
		Short:         "Package the vendor icon archive into a browsable tree",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "optional YAML config overlay")
	pf.StringVar(&a.cfg.WorkDir, "work", a.cfg.WorkDir, "working directory for download and extraction")
	pf.StringVar(&a.cfg.DestDir, "dest", a.cfg.DestDir, "destination tree")
	pf.StringVar(&a.cfg.SizeLabel, "size", a.cfg.SizeLabel, "pixel size label to keep")
	pf.StringVar(&a.formats, "formats", strings.Join(a.cfg.Formats, ","), "comma-separated format allow-list")
	pf.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "copy worker pool size")
	pf.BoolVar(&a.cfg.DryRun, "dry-run", false, "log what would happen without touching the filesystem")
	pf.BoolVar(&a.cfg.TolerateUnmatched, "tolerate-unmatched", false, "demote unmatched-category warnings to debug")
	pf.BoolVarP(&a.cfg.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(a),
		newFetchCmd(a),
		newMergeCmd(a),
		newRenameCmd(a),
		newTitlesCmd(a),
		newPageCmd(a),
	)
	return root
}

// setup finalizes the configuration (flags over YAML over defaults) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfgPath != "" {
		// Overlay first, then re-apply explicitly set flags so the
		// command line wins over the file.
		overlaid := config.Default()
		if err := config.LoadOverlay(&overlaid, a.cfgPath); err != nil {
			return err
		}
		flagged := a.cfg
		a.cfg = overlaid
		pf := cmd.Root().PersistentFlags()
		if pf.Changed("work") {
			a.cfg.WorkDir = flagged.WorkDir
		}
		if pf.Changed("dest") {
			a.cfg.DestDir = flagged.DestDir
		}
		if pf.Changed("size") {
			a.cfg.SizeLabel = flagged.SizeLabel
		}
		if pf.Changed("workers") {
			a.cfg.Workers = flagged.Workers
		}
		if pf.Changed("dry-run") {
			a.cfg.DryRun = flagged.DryRun
		}
		if pf.Changed("tolerate-unmatched") {
			a.cfg.TolerateUnmatched = flagged.TolerateUnmatched
		}
		if pf.Changed("verbose") {
			a.cfg.Verbose = flagged.Verbose
		}
		// Subcommand-local flags bind into cfg too; Changed is false
		// for flags the current command does not define.
		lf := cmd.Flags()
		if lf.Changed("archive-url") {
			a.cfg.ArchiveURL = flagged.ArchiveURL
		}
		if lf.Changed("page-url") {
			a.cfg.PageURL = flagged.PageURL
		}
		if lf.Changed("skip-fetch") {
			a.cfg.SkipFetch = flagged.SkipFetch
		}
		if lf.Changed("skip-page") {
			a.cfg.SkipPage = flagged.SkipPage
		}
		if lf.Changed("pdf") {
			a.cfg.PDFCatalog = flagged.PDFCatalog
		}
	}
	if cmd.Root().PersistentFlags().Changed("formats") {
		a.cfg.Formats = splitFormats(a.formats)
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(a.cfg.Verbose)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func splitFormats(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]bool{}
	for _, p := range parts {
		f := strings.ToLower(strings.TrimSpace(p))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
