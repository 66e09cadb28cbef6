// Package util contains small generic collection helpers shared by the
// grammar and parse packages: ordered key enumeration, a LIFO stack, and an
// insertion-ordered set. None of it is grammar-specific; it exists so that
// grammar and parse do not each reinvent the same handful of primitives.
package util

import "sort"

// OrderedKeys returns the keys of m in a deterministic order. As of this
// writing the order is alphabetical, but callers should treat that as an
// implementation detail, not a guarantee.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
