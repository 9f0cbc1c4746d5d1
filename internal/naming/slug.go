package naming

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug reduces a name to its lowercase alphanumeric skeleton:
// "Security, Identity, & Compliance" -> "securityidentitycompliance".
// Accented characters are decomposed (NFD) and their marks dropped, so
// "Café" and "Cafe" produce the same slug. Slugs are the exact-comparison
// keys used to pair categories across taxonomies.
func Slug(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens splits a name into lowercase word fragments. The extension is
// dropped first, then the remainder is split on hyphens, underscores,
// whitespace, and path separators. Empty fragments are discarded.
func Tokens(name string) []string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)

	fields := strings.FieldsFunc(base, func(r rune) bool {
		switch r {
		case '-', '_', '/', '\\':
			return true
		}
		return unicode.IsSpace(r)
	})
	return fields
}

// TokenMatch reports whether iconName covers category: every token of the
// category name must have some icon token that starts with it. This is a
// coverage test, not equality; "Compute" matches "Amazon-EC2-Compute_48.svg"
// via the "compute" token. Callers take the first match in their own
// enumeration order.
func TokenMatch(category, iconName string) bool {
	catTokens := Tokens(category)
	if len(catTokens) == 0 {
		return false
	}
	iconTokens := Tokens(iconName)

	for _, ct := range catTokens {
		found := false
		for _, it := range iconTokens {
			if strings.HasPrefix(it, ct) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
