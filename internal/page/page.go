// Package page renders the static browsing artifacts for the final icon
// tree: an HTML index and an optional PDF catalog.
package page

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/vjovkovs/iconpress/internal/fsutil"
	"github.com/vjovkovs/iconpress/internal/naming"
)

// Icon is one entry on the browsing page.
type Icon struct {
	Name string // display name, extension dropped
	Path string // path relative to the tree root, slash-separated
}

// Section groups the icons of one destination directory.
type Section struct {
	Name  string
	Tile  Icon // representative icon shown on the section header
	Icons []Icon
}

// Collect builds the page model from the destination tree. Sections follow
// the lexical order of the directories; each section's tile is the first
// icon (in lexical order) whose name token-matches the section name, or the
// first icon when nothing matches.
func Collect(root string) ([]Section, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var sections []Section
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sec := Section{Name: e.Name()}
		for path := range fsutil.FilesWithExt(filepath.Join(root, e.Name()), "svg") {
			rel, _ := filepath.Rel(root, path)
			base := filepath.Base(path)
			sec.Icons = append(sec.Icons, Icon{
				Name: base[:len(base)-len(filepath.Ext(base))],
				Path: filepath.ToSlash(rel),
			})
		}
		if len(sec.Icons) == 0 {
			continue
		}
		sort.Slice(sec.Icons, func(i, j int) bool { return sec.Icons[i].Path < sec.Icons[j].Path })
		sec.Tile = pickTile(sec.Name, sec.Icons)
		sections = append(sections, sec)
	}
	return sections, nil
}

func pickTile(section string, icons []Icon) Icon {
	for _, ic := range icons {
		if naming.TokenMatch(section, ic.Name) {
			return ic
		}
	}
	return icons[0]
}
