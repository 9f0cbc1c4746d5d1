package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(name, slug string) Category {
	return Category{Name: name, Slug: slug}
}

func TestBuildAliasesExactSlug(t *testing.T) {
	a := BuildAliases(
		[]Category{cat("Arch_Compute", "compute")},
		[]Category{cat("Res_Compute", "compute")},
		nil,
	)

	res, ok := a.Resolve("compute")
	require.True(t, ok)
	assert.Equal(t, "compute", res)
	assert.Empty(t, a.Unmatched)
}

func TestBuildAliasesContainment(t *testing.T) {
	a := BuildAliases(
		[]Category{cat("Arch_Database", "database")},
		[]Category{
			cat("Res_Databases", "databases"),
			cat("Res_Storage", "storage"),
		},
		nil,
	)

	res, ok := a.Resolve("database")
	require.True(t, ok)
	assert.Equal(t, "databases", res)
}

func TestBuildAliasesContainmentFirstLexicographic(t *testing.T) {
	// Both resource slugs contain "net"; the lexicographically first wins.
	a := BuildAliases(
		[]Category{cat("Arch_Net", "net")},
		[]Category{
			cat("Res_Subnets", "subnets"),
			cat("Res_Networking", "networking"),
		},
		nil,
	)

	res, ok := a.Resolve("net")
	require.True(t, ok)
	assert.Equal(t, "networking", res)
}

func TestBuildAliasesManualOverrideWins(t *testing.T) {
	// "analytics" would containment-match "analyticslegacy"; the override
	// redirects it and must take precedence.
	a := BuildAliases(
		[]Category{cat("Arch_Analytics", "analytics")},
		[]Category{
			cat("Res_Analytics-Legacy", "analyticslegacy"),
			cat("Res_Data-Analytics", "dataanalytics"),
		},
		map[string]string{"analytics": "dataanalytics"},
	)

	res, ok := a.Resolve("analytics")
	require.True(t, ok)
	assert.Equal(t, "dataanalytics", res)
}

func TestBuildAliasesManualTargetMustExist(t *testing.T) {
	a := BuildAliases(
		[]Category{cat("Arch_Robotics", "robotics")},
		[]Category{cat("Res_Storage", "storage")},
		map[string]string{"robotics": "doesnotexist"},
	)

	_, ok := a.Resolve("robotics")
	assert.False(t, ok)
	assert.Equal(t, []string{"Arch_Robotics"}, a.Unmatched)
}

func TestBuildAliasesUnmatchedReport(t *testing.T) {
	a := BuildAliases(
		[]Category{
			cat("Arch_Compute", "compute"),
			cat("Arch_Quantum", "quantum"),
		},
		[]Category{cat("Res_Compute", "compute")},
		nil,
	)

	assert.Equal(t, []string{"Arch_Quantum"}, a.Unmatched)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"Arch_Compute", "Arch_Storage", "Res_Compute", "notes"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "Arch_Stray.txt"), nil, 0o644))

	cats, err := Scan(root, "Arch_")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Arch_Compute", cats[0].Name)
	assert.Equal(t, "compute", cats[0].Slug)
	assert.Equal(t, "storage", cats[1].Slug)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "gone"), "Arch_")
	assert.Error(t, err)
}
