// Package resolve maps free-text item names to stable item ids.
package resolve

import (
	"sort"
	"strings"
)

// Resolver answers name→id lookups against a fixed title index. It never
// fails: an unknown name degrades to a missing_* placeholder id so downstream
// storage always has something to reference.
type Resolver struct {
	exact  map[string]string // title → id
	folded map[string]string // lower(title) → id
	norm   map[string]string // alphanumeric-normalized title → id
	sorted []entry           // name-sorted, for the substring fallback
}

type entry struct {
	name string // lower-cased title
	id   string
}

// New builds a resolver from a title→id index. Later stages are derived maps;
// when two titles collide after folding, the lexicographically smaller title
// wins so the outcome does not depend on map iteration order.
func New(titleIndex map[string]string) *Resolver {
	r := &Resolver{
		exact:  make(map[string]string, len(titleIndex)),
		folded: make(map[string]string, len(titleIndex)),
		norm:   make(map[string]string, len(titleIndex)),
	}

	titles := make([]string, 0, len(titleIndex))
	for title := range titleIndex {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		id := titleIndex[title]
		lower := strings.ToLower(title)

		r.exact[title] = id
		if _, ok := r.folded[lower]; !ok {
			r.folded[lower] = id
		}
		if n := normalize(title); n != "" {
			if _, ok := r.norm[n]; !ok {
				r.norm[n] = id
			}
		}
		r.sorted = append(r.sorted, entry{name: lower, id: id})
	}
	return r
}

// Resolve looks a name up by exact title, case-insensitive title, normalized
// title, then substring in either direction over the name-sorted index. The
// fallback placeholder follows the missing_<normalized-name> pattern.
func (r *Resolver) Resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "missing_unknown"
	}

	if id, ok := r.exact[name]; ok {
		return id
	}

	lower := strings.ToLower(name)
	if id, ok := r.folded[lower]; ok {
		return id
	}

	if id, ok := r.norm[normalize(name)]; ok {
		return id
	}

	// Deterministic scan: r.sorted is ordered by name, so the first hit is
	// stable across runs regardless of how the index map iterates.
	for _, e := range r.sorted {
		if strings.Contains(e.name, lower) || strings.Contains(lower, e.name) {
			return e.id
		}
	}

	return Placeholder(name)
}

// Placeholder synthesizes the missing_* id for an unresolved name.
func Placeholder(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, "-", "_")
	if slug == "" {
		slug = "unknown"
	}
	return "missing_" + slug
}

// normalize strips everything but letters and digits and folds case.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
