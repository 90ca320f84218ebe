// SPDX-License-Identifier: MIT
package surf

// Grid-size arithmetic. Kept as small unexported pure functions backing
// the exported wrappers in accessors.go.

// edgeSize returns the number of canonical samples an edge holds at level,
// 1 + 2^level.
// Complexity: O(1).
func edgeSize(level int) int {
	return 1 + (1 << uint(level))
}

// edgeBase returns the packed-array base offset for level within an edge's
// flat per-level sample slice: level + 2^level - 1. edgeBase(0) == 0 and
// edgeBase(l+1) == edgeBase(l) + edgeSize(l), so the per-level slices tile
// the flat array contiguously.
// Complexity: O(1).
func edgeBase(level int) int {
	return level + (1 << uint(level)) - 1
}

// edgeTotalSamples returns the flat sample count needed to hold every level
// 0..maxLevel of an edge.
// Complexity: O(1).
func edgeTotalSamples(maxLevel int) int {
	return edgeBase(maxLevel) + edgeSize(maxLevel)
}

// gridSize returns the per-corner grid side length at level, 2^(level-1)+1.
// Only meaningful for level >= 1; gridSize(0) is never queried.
// Complexity: O(1).
func gridSize(level int) int {
	return (1 << uint(level-1)) + 1
}

// gridSpacing returns the stride used to index the finest-level grid array
// when addressing level ℓ data: 2^(maxLevel-level).
// Complexity: O(1).
func gridSpacing(maxLevel, level int) int {
	return 1 << uint(maxLevel-level)
}
