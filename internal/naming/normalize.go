// Package naming implements the string rules shared by the rename and
// title-sync stages: taxonomy-prefix and brand-token stripping, size-suffix
// removal, separator cleanup, and the slug/token helpers used for
// cross-taxonomy category matching.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Rule regexes, applied in fixed order by the clean functions. The closed
// sets mirror the vendor archive: "Arch"/"Res" taxonomy prefixes,
// "Amazon"/"AWS" brand tokens, and the pixel sizes the package ships.
var (
	rePrefix = regexp.MustCompile(`(?i)^(arch|res)[-_ ]+`)

	reBrand = regexp.MustCompile(`(?i)(amazon|aws)`)

	// One trailing size marker: "_48", "-64", optionally with a scale
	// suffix ("_48@5x"), or a bare scale suffix ("@4x").
	reSizeSuffix = regexp.MustCompile(`(?i)[-_ ](16|24|32|48|64)(@[0-9]x)?$|@[0-9]x$`)

	// Bare numeric size for titles, no scale markers.
	reTitleSize = regexp.MustCompile(`[-_ ](16|24|32|48|64)$`)

	reSepRun = regexp.MustCompile(`[-_]{2,}`)
)

// cleanStem runs the shared tail of both rule sets: collapse separator runs
// to the run's first character, then trim separators and spaces from both
// ends.
func cleanStem(s string) string {
	s = reSepRun.ReplaceAllStringFunc(s, func(run string) string {
		return run[:1]
	})
	return strings.Trim(s, "-_ ")
}

// toFixpoint applies clean until the value stops changing. One pass can
// expose a marker for the next (brand stripping may uncover a taxonomy
// prefix, sizes can stack as "_48_48"), and the rename stage revisits
// already-clean trees, so every rule set must be idempotent.
func toFixpoint(clean func(string) string, s string) string {
	for {
		next := clean(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanFileStem(stem string) string {
	out := rePrefix.ReplaceAllString(stem, "")
	out = reBrand.ReplaceAllString(out, "")
	out = reSizeSuffix.ReplaceAllString(out, "")
	return cleanStem(out)
}

// CleanFileName applies the full filename rule set to name and reattaches
// the extension. Rules, in order: strip the leading taxonomy prefix, strip
// brand tokens anywhere, strip one trailing size suffix, collapse separator
// runs, trim. A name that strips to nothing is returned unchanged; the
// result is never empty.
func CleanFileName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	out := toFixpoint(cleanFileStem, stem)
	if out == "" {
		return name
	}
	return out + ext
}

// CleanDirName applies the filename rule set to a directory name. Directory
// names have no extension to protect, so the whole name is the stem.
func CleanDirName(name string) string {
	out := toFixpoint(cleanFileStem, name)
	if out == "" {
		return name
	}
	return out
}

// CleanTitle applies the reduced rule set used for embedded display text:
// strip the taxonomy prefix and trailing numeric sizes, collapse and trim
// separators. Brand tokens are retained on purpose; display labels keep
// "AWS"/"Amazon" visible even though filenames drop them.
func CleanTitle(title string) string {
	out := toFixpoint(func(s string) string {
		s = rePrefix.ReplaceAllString(s, "")
		s = reTitleSize.ReplaceAllString(s, "")
		return cleanStem(s)
	}, title)
	if out == "" {
		return title
	}
	return out
}
