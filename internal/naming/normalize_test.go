package naming

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"taxonomy prefix", "Arch_Compute_48.svg", "Compute.svg"},
		{"resource prefix", "Res_Bucket_48.svg", "Bucket.svg"},
		{"brand token amazon", "Amazon-EC2_48.svg", "EC2.svg"},
		{"brand token aws", "AWS-Lambda_64.svg", "Lambda.svg"},
		{"brand mid-name", "Elastic-Amazon-Thing.svg", "Elastic-Thing.svg"},
		{"scale marker", "Arch_Amazon-S3_48@5x.png", "S3.png"},
		{"bare scale marker", "Keyspaces@4x.png", "Keyspaces.png"},
		{"stacked sizes", "Thing_48_48.svg", "Thing.svg"},
		{"separator run", "Foo--Bar__Baz.svg", "Foo-Bar_Baz.svg"},
		{"no rules apply", "Plain-Icon.svg", "Plain-Icon.svg"},
		{"size not at end untouched", "S3-48-Glacier.svg", "S3-48-Glacier.svg"},
		{"only stripped tokens falls back", "AWS_48.svg", "AWS_48.svg"},
		{"prefix only falls back", "Arch_", "Arch_"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanFileName(tc.in))
		})
	}
}

func TestCleanFileNameIdempotent(t *testing.T) {
	inputs := []string{
		"Arch_Compute_48.svg",
		"Amazon-EC2_48.svg",
		"AWSArch_Foo.svg",
		"Res_Amazon-Aurora_64@5x.png",
		"Plain.svg",
		"AWS_48.svg",
		"Arch_Res_Nested_48_48.svg",
	}
	for _, in := range inputs {
		once := CleanFileName(in)
		assert.Equal(t, once, CleanFileName(once), "input %q", in)
	}
}

func TestCleanFileNamePreservesExtension(t *testing.T) {
	for _, in := range []string{
		"Arch_Compute_48.svg",
		"Amazon-EC2_48.PNG",
		"noext",
		"AWS_48.svg",
	} {
		wantExt := filepath.Ext(in)
		assert.Equal(t, wantExt, filepath.Ext(CleanFileName(in)), "input %q", in)
	}
}

func TestCleanDirName(t *testing.T) {
	assert.Equal(t, "Compute", CleanDirName("Arch_Compute"))
	assert.Equal(t, "Storage", CleanDirName("Res_Storage"))
	// Dots in directory names are not extensions.
	assert.Equal(t, "v2.icons", CleanDirName("Arch_v2.icons"))
	assert.Equal(t, "48", CleanDirName("Res_48"))
}

func TestCleanTitleKeepsBrand(t *testing.T) {
	in := "Amazon-EC2_48"

	file := CleanFileName(in + ".svg")
	title := CleanTitle(in)

	assert.NotContains(t, strings.ToLower(file), "amazon")
	assert.Equal(t, "Amazon-EC2", title)
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Amazon-EC2_48", "Amazon-EC2"},
		{"Arch_AWS-Lambda_64", "AWS-Lambda"},
		{"Res_Amazon-Aurora-Instance", "Amazon-Aurora-Instance"},
		{"Already Clean", "Already Clean"},
		{"", ""},
	}
	for _, tc := range cases {
		got := CleanTitle(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, got, CleanTitle(got), "idempotence for %q", tc.in)
	}
}
