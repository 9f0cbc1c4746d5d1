// Package config holds runtime configuration: compiled defaults, an
// optional YAML overlay, and validation. The resulting Config is passed by
// pointer to every stage; there is no package-level mutable state.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for a pipeline run.
type Config struct {
	// Paths.
	WorkDir string `yaml:"work_dir"` // downloaded archive + extraction live here
	DestDir string `yaml:"dest_dir"` // merged destination tree

	// Source archive. ArchiveURL points directly at the zip; when empty,
	// PageURL is scraped for the newest archive link.
	ArchiveURL string `yaml:"archive_url"`
	PageURL    string `yaml:"page_url"`
	UserAgent  string `yaml:"user_agent"`

	// Filter settings.
	SizeLabel string   `yaml:"size_label"` // pixel-dimension subdir/suffix, e.g. "48"
	Formats   []string `yaml:"formats"`    // lowercase extensions without dot

	// Taxonomy layout of the extracted archive.
	ArchRootMarker     string `yaml:"arch_root_marker"`
	ResRootMarker      string `yaml:"res_root_marker"`
	GroupRootMarker    string `yaml:"group_root_marker"`
	CategoryRootMarker string `yaml:"category_root_marker"`
	ArchPrefix         string `yaml:"arch_prefix"`
	ResPrefix          string `yaml:"res_prefix"`
	GeneralCategory    string `yaml:"general_category"` // light/dark set, e.g. "Arch_General-Icons"

	// Destination subdirectory names.
	LightDirName    string `yaml:"light_dir"`
	DarkDirName     string `yaml:"dark_dir"`
	GroupDirName    string `yaml:"group_dir"`
	CategoryDirName string `yaml:"category_dir"`

	// Manual alias overrides, architecture slug -> resource slug. Merged
	// over the compiled table; YAML entries win.
	AliasOverrides map[string]string `yaml:"alias_overrides"`

	// Behavior.
	Workers           int  `yaml:"workers"`
	DryRun            bool `yaml:"dry_run"`
	TolerateUnmatched bool `yaml:"tolerate_unmatched"` // unmatched categories logged at debug, not warn
	SkipFetch         bool `yaml:"skip_fetch"`
	SkipPage          bool `yaml:"skip_page"`
	PDFCatalog        bool `yaml:"pdf_catalog"`
	Verbose           bool `yaml:"verbose"`
}

// Default returns a Config matching the vendor archive shape as shipped.
func Default() Config {
	return Config{
		WorkDir:            "work",
		DestDir:            "icons",
		PageURL:            "https://aws.amazon.com/architecture/icons/",
		UserAgent:          "iconpress/1.0 (+https://github.com/vjovkovs/iconpress)",
		SizeLabel:          "48",
		Formats:            []string{"svg"},
		ArchRootMarker:     "Architecture-Service-Icons",
		ResRootMarker:      "Resource-Icons",
		GroupRootMarker:    "Architecture-Group-Icons",
		CategoryRootMarker: "Category-Icons",
		ArchPrefix:         "Arch_",
		ResPrefix:          "Res_",
		GeneralCategory:    "Arch_General-Icons",
		LightDirName:       "General-Light",
		DarkDirName:        "General-Dark",
		GroupDirName:       "Group-Icons",
		CategoryDirName:    "Category-Icons",
		Workers:            runtime.NumCPU(),
		PDFCatalog:         false,
	}
}

// LoadOverlay reads a YAML file and overlays it onto cfg. Absent keys keep
// their current values; alias_overrides entries are merged key by key.
func LoadOverlay(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	overrides := cfg.AliasOverrides
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	for k, v := range overrides {
		if _, ok := cfg.AliasOverrides[k]; !ok {
			if cfg.AliasOverrides == nil {
				cfg.AliasOverrides = map[string]string{}
			}
			cfg.AliasOverrides[k] = v
		}
	}
	return nil
}

// Validate checks fields every stage depends on. Formats are canonicalized
// to lowercase without the leading dot.
func (c *Config) Validate() error {
	if c.WorkDir == "" || c.DestDir == "" {
		return errors.New("work_dir and dest_dir must not be empty")
	}
	if c.SizeLabel == "" {
		return errors.New("size_label must not be empty")
	}
	if len(c.Formats) == 0 {
		return errors.New("at least one format is required")
	}
	for i, f := range c.Formats {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if f == "" {
			return fmt.Errorf("format %d is empty", i)
		}
		c.Formats[i] = f
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}

// FormatAllowed reports whether ext (with or without leading dot, any case)
// is on the allow-list.
func (c *Config) FormatAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range c.Formats {
		if f == ext {
			return true
		}
	}
	return false
}
