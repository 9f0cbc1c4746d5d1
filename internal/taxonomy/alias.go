package taxonomy

import (
	"sort"
	"strings"
)

// manualAliases pairs architecture slugs with resource slugs where neither
// the exact-slug nor the containment pass can find the counterpart. Curated
// against the shipped archive; extendable through config alias_overrides.
var manualAliases = map[string]string{
	"appintegration": "applicationintegration",
	"mlai":           "machinelearning",
	"iot":            "internetofthings",
}

// Aliases maps architecture-category slugs to resource-category slugs. It
// is built once per run and read-only afterwards.
type Aliases struct {
	byArch map[string]string
	// Unmatched lists architecture categories with no resource
	// counterpart, in scan order.
	Unmatched []string
}

// Resolve returns the resource slug aliased to archSlug.
func (a *Aliases) Resolve(archSlug string) (string, bool) {
	res, ok := a.byArch[archSlug]
	return res, ok
}

// BuildAliases computes the architecture→resource mapping in three passes:
// identical slugs, then substring containment (first match over resource
// slugs in lexicographic order), then manual overrides, which always win.
// overrides extends the compiled manual table. Categories left unresolved
// go on the Unmatched list; that is an expected outcome, not an error.
func BuildAliases(arch, res []Category, overrides map[string]string) *Aliases {
	resBySlug := make(map[string]bool, len(res))
	for _, c := range res {
		resBySlug[c.Slug] = true
	}

	// Lexicographic enumeration keeps the containment heuristic's
	// "first match wins" deterministic across runs.
	resSlugs := make([]string, 0, len(res))
	for _, c := range res {
		resSlugs = append(resSlugs, c.Slug)
	}
	sort.Strings(resSlugs)

	manual := make(map[string]string, len(manualAliases)+len(overrides))
	for k, v := range manualAliases {
		manual[k] = v
	}
	for k, v := range overrides {
		manual[k] = v
	}

	a := &Aliases{byArch: make(map[string]string, len(arch))}
	for _, c := range arch {
		switch {
		case resBySlug[c.Slug]:
			a.byArch[c.Slug] = c.Slug
		default:
			if match, ok := containmentMatch(c.Slug, resSlugs); ok {
				a.byArch[c.Slug] = match
			}
		}
	}

	for archSlug, resSlug := range manual {
		if resBySlug[resSlug] {
			a.byArch[archSlug] = resSlug
		}
	}

	for _, c := range arch {
		if _, ok := a.byArch[c.Slug]; !ok {
			a.Unmatched = append(a.Unmatched, c.Name)
		}
	}
	return a
}

// containmentMatch finds the first resource slug where either string
// contains the other. Known heuristic limitation: with several candidates
// sharing a substring the first lexicographic one wins, related or not.
func containmentMatch(archSlug string, resSlugs []string) (string, bool) {
	if archSlug == "" {
		return "", false
	}
	for _, rs := range resSlugs {
		if rs == "" {
			continue
		}
		if strings.Contains(rs, archSlug) || strings.Contains(archSlug, rs) {
			return rs, true
		}
	}
	return "", false
}
