// SPDX-License-Identifier: MIT
package surf

import "github.com/katalvlaran/ccgsurf/handle"

// mapValues collects every value currently stored in m. Used wherever the
// kernel needs a stable slice to range over while potentially mutating
// flags (handle.Map.All is a live iterator and should not be range'd over
// while the map itself is being restructured).
// Complexity: O(n) time and space.
func mapValues[V any](m *handle.Map[V]) []V {
	out := make([]V, 0, m.Len())
	for _, v := range m.All() {
		out = append(out, v)
	}
	return out
}
