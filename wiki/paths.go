package wiki

import "strings"

// PathVariant names a path transformation strategy used when a lookup by
// the normalized path reports not found.
type PathVariant string

const (
	// VariantNormalized is the leading-slash-stripped form. It is always
	// tried first and never needs to be configured.
	VariantNormalized PathVariant = "normalized"

	// VariantLeadingSlash restores the leading slash
	VariantLeadingSlash PathVariant = "leading-slash"

	// VariantLocalePrefix prepends the default locale segment (e.g. "en/")
	VariantLocalePrefix PathVariant = "locale-prefix"

	// VariantLocalePrefixSlash prepends the locale segment and a leading slash
	VariantLocalePrefixSlash PathVariant = "locale-prefix-slash"
)

// PathPolicy is an ordered list of path variants tried in sequence,
// stopping at first success. The wiki server's exact path acceptance rule
// is environment-specific, so this is a best-effort heuristic, not a
// guarantee. The default policy tries only the normalized form.
type PathPolicy struct {
	locale    string
	fallbacks []PathVariant
}

// NewPathPolicy builds a policy from configured fallback names. Unknown
// names are ignored so a stale WIKI_PATH_FALLBACKS value degrades to fewer
// attempts rather than a startup failure.
func NewPathPolicy(fallbacks []string, locale string) PathPolicy {
	p := PathPolicy{locale: locale}
	for _, name := range fallbacks {
		switch v := PathVariant(name); v {
		case VariantNormalized, VariantLeadingSlash, VariantLocalePrefix, VariantLocalePrefixSlash:
			p.fallbacks = append(p.fallbacks, v)
		}
	}
	return p
}

// NormalizePath strips exactly one leading slash. Interior slashes are
// never altered.
func NormalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}

// Variants returns the ordered list of lookup candidates for a raw path.
// The normalized form is always first; configured fallbacks follow in
// order, deduplicated. Locale-prefix variants are skipped when the path
// already starts with the locale segment.
func (p PathPolicy) Variants(raw string) []string {
	norm := NormalizePath(raw)
	out := []string{norm}
	seen := map[string]bool{norm: true}

	add := func(candidate string) {
		if !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	hasLocale := p.locale != "" && strings.HasPrefix(norm, p.locale+"/")

	for _, v := range p.fallbacks {
		switch v {
		case VariantNormalized:
			// Already first.
		case VariantLeadingSlash:
			add("/" + norm)
		case VariantLocalePrefix:
			if !hasLocale {
				add(p.locale + "/" + norm)
			}
		case VariantLocalePrefixSlash:
			if !hasLocale {
				add("/" + p.locale + "/" + norm)
			}
		}
	}
	return out
}
