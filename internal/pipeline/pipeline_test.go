package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vjovkovs/iconpress/internal/config"
	"github.com/vjovkovs/iconpress/internal/merge"
)

func setup(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.WorkDir = filepath.Join(base, "work")
	cfg.DestDir = filepath.Join(base, "icons")
	cfg.SkipFetch = true
	cfg.Workers = 2
	require.NoError(t, cfg.Validate())

	src := SrcDir(&cfg)
	for rel, content := range map[string]string{
		"Architecture-Service-Icons_x/Arch_Compute/48/Arch_Amazon-EC2_48.svg": `<svg><title>Arch_Amazon-EC2_48</title></svg>`,
		"Resource-Icons_x/Res_Compute/Res_EC2-Instance_48.svg":                `<svg><title>Res_EC2-Instance_48</title></svg>`,
	} {
		path := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return &cfg
}

func TestRunEndToEnd(t *testing.T) {
	cfg := setup(t)
	require.NoError(t, Run(context.Background(), cfg, zap.NewNop()))

	// Merged under the raw category name, then renamed.
	b, err := os.ReadFile(filepath.Join(cfg.DestDir, "Compute", "EC2.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg><title>Amazon-EC2</title></svg>`, string(b))

	b, err = os.ReadFile(filepath.Join(cfg.DestDir, "Compute", "EC2-Instance.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg><title>EC2-Instance</title></svg>`, string(b))

	// Browse page and merge report land at the destination root.
	html, err := os.ReadFile(filepath.Join(cfg.DestDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Compute/EC2.svg")

	var rep merge.Report
	repB, err := os.ReadFile(filepath.Join(cfg.DestDir, "merge-report.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(repB, &rep))
	assert.Equal(t, int64(2), rep.Copied)
	assert.Equal(t, int64(1), rep.Merged)
}

func TestRunResumesPartialState(t *testing.T) {
	// An interrupted run leaves some files copied but not yet renamed.
	// The rerun must converge on the same final tree: existing copies are
	// skipped, the missing ones land, and rename/title cleanup proceeds.
	cfg := setup(t)
	partial := filepath.Join(cfg.DestDir, "Arch_Compute", "Arch_Amazon-EC2_48.svg")
	require.NoError(t, os.MkdirAll(filepath.Dir(partial), 0o755))
	require.NoError(t, os.WriteFile(partial, []byte(`<svg><title>Arch_Amazon-EC2_48</title></svg>`), 0o644))

	require.NoError(t, Run(context.Background(), cfg, zap.NewNop()))

	entries, err := os.ReadDir(filepath.Join(cfg.DestDir, "Compute"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	b, err := os.ReadFile(filepath.Join(cfg.DestDir, "Compute", "EC2.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg><title>Amazon-EC2</title></svg>`, string(b))
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := setup(t)
	cfg.DryRun = true
	require.NoError(t, Run(context.Background(), cfg, zap.NewNop()))

	_, err := os.Stat(cfg.DestDir)
	assert.True(t, os.IsNotExist(err))
}
