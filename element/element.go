// SPDX-License-Identifier: MIT
// Package element implements componentwise arithmetic over a packed
// per-vertex sample: a fixed-length []float64 of numLayers floats. Every
// subdivision rule in package surf (face centers, edge midpoints, vertex
// blends, grid stencils) reduces to one of the operations here applied to
// whole elements rather than bare 3-vectors, so that callers carrying
// extra per-vertex layers (color, UV, ...) get them subdivided for free
// alongside position.
package element

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Element is one packed sample: numLayers float64 values. Layer 0..2 are
// conventionally position XYZ when numLayers >= 3; additional layers are
// opaque to this package.
type Element []float64

// New allocates a zeroed Element of the given layer count.
// Complexity: O(L) time, O(L) space, where L is the layer count.
func New(numLayers int) Element {
	return make(Element, numLayers)
}

// Zero resets every layer of dst to 0.
// Complexity: O(L) time, O(1) space.
func Zero(dst Element) {
	for i := range dst {
		dst[i] = 0
	}
}

// Copy copies src into dst. Panics if the lengths differ, failing loudly
// on a caller-side layout mismatch rather than silently truncating.
// Complexity: O(L) time, O(1) space.
func Copy(dst, src Element) {
	if len(dst) != len(src) {
		panic("element: Copy length mismatch")
	}
	copy(dst, src)
}

// Add sets dst = a + b.
// Complexity: O(L) time, O(1) space.
func Add(dst, a, b Element) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// AddInPlace sets dst += a.
// Complexity: O(L) time, O(1) space.
func AddInPlace(dst, a Element) {
	for i := range dst {
		dst[i] += a[i]
	}
}

// Sub sets dst = a - b.
// Complexity: O(L) time, O(1) space.
func Sub(dst, a, b Element) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// Scale sets dst = a * f.
// Complexity: O(L) time, O(1) space.
func Scale(dst, a Element, f float64) {
	copy(dst, a)
	floats.Scale(f, dst)
}

// AvgN sets dst to the unweighted mean of elems. Panics if elems is empty.
// Complexity: O(N·L) time, O(1) space, where N is the input count.
func AvgN(dst Element, elems ...Element) {
	if len(elems) == 0 {
		panic("element: AvgN with no inputs")
	}
	Zero(dst)
	for _, e := range elems {
		AddInPlace(dst, e)
	}
	inv := 1.0 / float64(len(elems))
	for i := range dst {
		dst[i] *= inv
	}
}

// Avg4 sets dst to the mean of exactly four elements — the shape the
// interior face/grid-edge subdivision stencils use on every call.
// Complexity: O(L) time, O(1) space.
func Avg4(dst, a, b, c, d Element) {
	for i := range dst {
		dst[i] = (a[i] + b[i] + c[i] + d[i]) * 0.25
	}
}

// Midpoint sets dst = (a+b)/2.
// Complexity: O(L) time, O(1) space.
func Midpoint(dst, a, b Element) {
	for i := range dst {
		dst[i] = (a[i] + b[i]) * 0.5
	}
}

// Lerp sets dst = a + t*(b-a).
// Complexity: O(L) time, O(1) space.
func Lerp(dst, a, b Element, t float64) {
	for i := range dst {
		dst[i] = a[i] + t*(b[i]-a[i])
	}
}

// CopyXYZ copies src's first three layers into dst, regardless of
// either's total layer count. Used wherever a 3-component normal is
// derived from a full (possibly >3-layer) sample.
// Complexity: O(1) time, O(1) space.
func CopyXYZ(dst, src Element) {
	dst[0] = src[0]
	dst[1] = src[1]
	dst[2] = src[2]
}

// Dot returns the sum of componentwise products of a and b.
// Complexity: O(L) time, O(1) space.
func Dot(a, b Element) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize scales dst in place to unit length under the Euclidean norm of
// its first three layers. No-op if that norm is zero.
// Complexity: O(1) time, O(1) space.
func Normalize(dst Element) {
	n := dst[0]*dst[0] + dst[1]*dst[1] + dst[2]*dst[2]
	if n == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(n)
	dst[0] *= inv
	dst[1] *= inv
	dst[2] *= inv
}

// Equal performs an exact, bit-for-bit comparison, deliberately without an
// epsilon tolerance: round-trip properties over this type require that two
// samples produced by the same deterministic path compare equal exactly,
// not merely close.
// Complexity: O(L) time, O(1) space.
func Equal(a, b Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
