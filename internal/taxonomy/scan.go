// Package taxonomy discovers category directories under the two source
// taxonomies and resolves which architecture category corresponds to which
// resource category.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vjovkovs/iconpress/internal/naming"
)

// Category is one named grouping under a taxonomy root.
type Category struct {
	Dir  string // absolute path of the category directory
	Name string // raw directory name, prefix included
	Slug string // slug of the name with the taxonomy prefix stripped
}

// Scan lists the category directories directly under root that carry
// prefix, in lexical order. The prefix is stripped before slugging so
// "Arch_Compute" and "Res_Compute" land on the same slug.
func Scan(root, prefix string) ([]Category, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan taxonomy root %s: %w", root, err)
	}

	var cats []Category
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		cats = append(cats, Category{
			Dir:  filepath.Join(root, e.Name()),
			Name: e.Name(),
			Slug: naming.Slug(strings.TrimPrefix(e.Name(), prefix)),
		})
	}
	return cats, nil
}
