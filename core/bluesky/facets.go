// ABOUTME: Facet text rewriter resolving byte-offset link spans
// ABOUTME: Replaces each link facet's span with [label](url) markup

package bluesky

import "sort"

// replacement is one pending substitution over the raw text bytes.
type replacement struct {
	start int
	end   int
	text  string
}

// applyFacets rewrites every valid link facet of text into [label](url)
// markup, where label is the exact substring the facet's byte span
// covers. Facets with a missing index, an out-of-range span, no link
// feature, an empty label or an empty URL are skipped. Replacements are
// applied from the highest byte offset down so earlier substitutions
// never shift the offsets still to be applied.
func applyFacets(text string, facets []Facet) string {
	if len(facets) == 0 {
		return text
	}

	raw := []byte(text)
	replacements := make([]replacement, 0, len(facets))

	for _, facet := range facets {
		if facet.Index == nil || len(facet.Features) == 0 {
			continue
		}

		start := facet.Index.ByteStart
		end := facet.Index.ByteEnd
		if start < 0 || end <= start || end > len(raw) {
			continue
		}

		for _, feature := range facet.Features {
			if feature.Type != facetLinkType {
				continue
			}

			// Offsets come from the same UTF-8 encoding used to index,
			// so well-formed spans never split a multi-byte code point.
			label := string(raw[start:end])
			if label == "" || feature.URI == "" {
				continue
			}

			replacements = append(replacements, replacement{
				start: start,
				end:   end,
				text:  "[" + label + "](" + feature.URI + ")",
			})
		}
	}

	sort.Slice(replacements, func(i, j int) bool {
		return replacements[i].start > replacements[j].start
	})

	for _, r := range replacements {
		raw = []byte(string(raw[:r.start]) + r.text + string(raw[r.end:]))
	}

	return string(raw)
}
