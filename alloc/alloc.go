// SPDX-License-Identifier: MIT

// Package alloc provides the pluggable allocation vtable used by package
// surf to obtain the backing storage for vertex, edge, and face entities:
// an Alloc/Realloc/Free triple, including a Realloc signature that carries
// an old-size parameter the default heap wrapper ignores — kept here so a
// custom allocator that does need it (an arena, a pool keyed by size
// class, …) still has it available.
package alloc

// Allocator is the pluggable allocation vtable. A *SubSurf is
// constructed with one; the default, returned by NewHeap, delegates
// straight to Go's garbage-collected heap via make/append.
type Allocator interface {
	// Alloc returns a new zeroed byte slice of size n.
	Alloc(n int) []byte

	// Realloc grows or shrinks buf to newSize, preserving its prefix.
	// oldSize is informational only for the default allocator (Go slices
	// already know their own length) but is part of the signature because
	// a size-class or arena allocator needs it to find the right free
	// list.
	Realloc(buf []byte, oldSize, newSize int) []byte

	// Free releases buf. The default allocator is a no-op here; the
	// garbage collector reclaims it once unreferenced.
	Free(buf []byte)
}

// heapAllocator is the default Allocator, wrapping the process heap.
type heapAllocator struct{}

// NewHeap returns the default heap-backed Allocator.
// Complexity: O(1) time, O(1) space.
func NewHeap() Allocator { return heapAllocator{} }

// Complexity: O(n) time (zeroing), O(n) space.
func (heapAllocator) Alloc(n int) []byte {
	return make([]byte, n)
}

// Complexity: O(newSize) time worst case, O(newSize) space.
func (heapAllocator) Realloc(buf []byte, oldSize, newSize int) []byte {
	_ = oldSize
	if newSize <= cap(buf) {
		out := buf[:newSize]
		for i := len(buf); i < newSize; i++ {
			out[i] = 0
		}
		return out
	}
	out := make([]byte, newSize)
	copy(out, buf)
	return out
}

func (heapAllocator) Free([]byte) {}
