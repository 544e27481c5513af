package sync

import (
	"strings"

	"woosync.GO/model/entity/catalog"
)

// MapAttributes converts remote attributes into local custom (non-taxonomy)
// attributes. Input order becomes position; visible/variation carry over
// verbatim. Attributes with an empty name or no usable options are skipped
// silently; that is valid remote data, not an error. Options are trimmed
// and de-duplicated preserving first occurrence.
func MapAttributes(in []RemoteAttribute) []catalog.ProductAttribute {
	out := make([]catalog.ProductAttribute, 0, len(in))
	pos := 0

	for _, a := range in {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}

		seen := make(map[string]bool, len(a.Options))
		opts := make([]string, 0, len(a.Options))
		for _, o := range a.Options {
			o = strings.TrimSpace(o)
			if o == "" || seen[o] {
				continue
			}
			seen[o] = true
			opts = append(opts, o)
		}
		if len(opts) == 0 {
			continue
		}

		out = append(out, catalog.ProductAttribute{
			Name:      name,
			Options:   opts,
			Position:  pos,
			Visible:   a.Visible,
			Variation: a.Variation,
		})
		pos++
	}
	return out
}
