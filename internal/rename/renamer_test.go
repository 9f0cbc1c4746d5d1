package rename

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/config"
)

func newRenamer(t *testing.T) *Renamer {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	return New(&cfg, zap.NewNop())
}

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
	}
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	require.NoError(t, filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	}))
	sort.Strings(out)
	return out
}

func TestRunRenamesChildrenBeforeParent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Arch_Compute/Arch_Amazon-EC2_48.svg",
		"Arch_Compute/Nested/Res_Bucket_48.svg",
	)

	r := newRenamer(t)
	require.NoError(t, r.Run(root))

	assert.Equal(t, []string{
		"Compute/EC2.svg",
		"Compute/Nested/Bucket.svg",
	}, listTree(t, root))
	assert.Zero(t, r.Skipped)
}

func TestRunCollisionSkipsLater(t *testing.T) {
	// Both files clean to EC2.svg; lexical walk order makes the
	// architecture file win and the resource copy keep its raw name.
	root := t.TempDir()
	writeFiles(t, root,
		"Arch_Compute/Amazon-EC2_48.svg",
		"Arch_Compute/EC2_48.svg",
	)

	r := newRenamer(t)
	require.NoError(t, r.Run(root))

	assert.Equal(t, []string{
		"Compute/EC2.svg",
		"Compute/EC2_48.svg",
	}, listTree(t, root))
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 2, r.Renamed)
}

func TestRunIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Arch_Storage/Amazon-S3_48.svg")

	first := newRenamer(t)
	require.NoError(t, first.Run(root))
	before := listTree(t, root)

	second := newRenamer(t)
	require.NoError(t, second.Run(root))

	assert.Equal(t, before, listTree(t, root))
	assert.Zero(t, second.Renamed)
	assert.Zero(t, second.Skipped)
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Arch_Compute/Amazon-EC2_48.svg")

	cfg := config.Default()
	cfg.DryRun = true
	require.NoError(t, cfg.Validate())
	r := New(&cfg, zap.NewNop())
	require.NoError(t, r.Run(root))

	assert.Equal(t, []string{"Arch_Compute/Amazon-EC2_48.svg"}, listTree(t, root))
	assert.Equal(t, 2, r.Renamed) // file + directory would both move
}

func TestRunDryRunCollisionCountsMatchRealRun(t *testing.T) {
	// Collisions are decided against the directory's final name set, not
	// on-disk state, so a dry run reports the renamed/skipped counts the
	// real run then produces.
	fixture := []string{
		"Arch_Compute/Amazon-EC2_48.svg",
		"Arch_Compute/EC2_48.svg",
	}

	dryRoot := t.TempDir()
	writeFiles(t, dryRoot, fixture...)
	cfg := config.Default()
	cfg.DryRun = true
	require.NoError(t, cfg.Validate())
	dry := New(&cfg, zap.NewNop())
	require.NoError(t, dry.Run(dryRoot))

	liveRoot := t.TempDir()
	writeFiles(t, liveRoot, fixture...)
	live := newRenamer(t)
	require.NoError(t, live.Run(liveRoot))

	assert.Equal(t, live.Renamed, dry.Renamed)
	assert.Equal(t, live.Skipped, dry.Skipped)
	assert.Equal(t, 2, dry.Renamed)
	assert.Equal(t, 1, dry.Skipped)
}

func TestRunCollisionWithUnrenamedNeighbor(t *testing.T) {
	// EC2.svg already carries its cleaned name; the file cleaning to the
	// same name keeps its raw one even though it walks first.
	root := t.TempDir()
	writeFiles(t, root,
		"Compute/Amazon-EC2_48.svg",
		"Compute/EC2.svg",
	)

	r := newRenamer(t)
	require.NoError(t, r.Run(root))

	assert.Equal(t, []string{
		"Compute/Amazon-EC2_48.svg",
		"Compute/EC2.svg",
	}, listTree(t, root))
	assert.Equal(t, 1, r.Skipped)
	assert.Zero(t, r.Renamed)
}

func TestRunMissingRoot(t *testing.T) {
	r := newRenamer(t)
	assert.Error(t, r.Run(filepath.Join(t.TempDir(), "gone")))
}

func TestRunDryRunMissingRootIsEmptyTree(t *testing.T) {
	// Under dry-run the merge stage never creates the destination; an
	// absent root means nothing would be renamed, not a failure.
	cfg := config.Default()
	cfg.DryRun = true
	require.NoError(t, cfg.Validate())
	r := New(&cfg, zap.NewNop())

	require.NoError(t, r.Run(filepath.Join(t.TempDir(), "gone")))
	assert.Zero(t, r.Renamed)
	assert.Zero(t, r.Skipped)
}
