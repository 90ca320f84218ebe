// SPDX-License-Identifier: MIT
package handle

import "iter"

// ID is the raw bit-pattern of a caller-supplied handle. It is signed so
// that sentinel values such as -1 (used by the topology builder to mark a
// synthetic edge created during face sync, see surf/sync_full.go) are
// representable without a side channel.
type ID int64

// bucketSizes is the fixed prime-ish growth sequence the table steps
// through as load increases. The table never shrinks.
var bucketSizes = []int{1, 3, 5, 11, 17, 37, 67, 131, 257, 521, 1031, 2053, 4099, 8209, 16411, 32771, 65537}

// entry is one link in a bucket's singly-linked chain.
type entry[V any] struct {
	id   ID
	val  V
	next *entry[V]
}

// Map is an open-chained hash table keyed by ID. The zero value is not
// usable; construct with NewMap.
type Map[V any] struct {
	buckets  []*entry[V]
	numItems int
}

// NewMap returns an empty Map sized to the smallest bucket count.
// Complexity: O(1) time, O(1) space.
func NewMap[V any]() *Map[V] {
	return &Map[V]{buckets: make([]*entry[V], bucketSizes[0])}
}

// Len reports the number of entries currently stored.
// Complexity: O(1).
func (m *Map[V]) Len() int { return m.numItems }

// bucketFor returns the bucket index for id under the current table size.
// No hash function beyond modulo is used, per design: handles are expected
// to already be well distributed (pointers, counters, or hashed UUIDs).
func (m *Map[V]) bucketFor(id ID) int {
	n := int64(len(m.buckets))
	r := int64(id) % n
	if r < 0 {
		r += n
	}
	return int(r)
}

// Insert prepends a new entry for id. It does not check for an existing
// entry with the same id — the caller is expected to Remove a stale entry
// first; inserting over a live id just shadows it (Lookup favors the most
// recent insert). The topology builder reinserts a caller id only after
// removing it from the old snapshot, but inserts every synthetic edge
// under the same id -1, so those entries shadow one another.
// Complexity: O(1) amortized — a rehash costs O(n) but triggers only past
// the 3-entries-per-bucket load threshold.
func (m *Map[V]) Insert(id ID, val V) {
	if m.numItems > 3*len(m.buckets) {
		m.grow()
	}
	b := m.bucketFor(id)
	m.buckets[b] = &entry[V]{id: id, val: val, next: m.buckets[b]}
	m.numItems++
}

// Lookup returns the value stored for id, if any.
// Complexity: O(1) expected, O(chain length) worst case.
func (m *Map[V]) Lookup(id ID) (V, bool) {
	var zero V
	b := m.bucketFor(id)
	for e := m.buckets[b]; e != nil; e = e.next {
		if e.id == id {
			return e.val, true
		}
	}
	return zero, false
}

// Remove unlinks the first entry matching id, if present, using a
// predecessor walk so the unlink itself is O(1) once found. Reports
// whether an entry was removed.
// Complexity: O(1) expected, O(chain length) worst case.
func (m *Map[V]) Remove(id ID) bool {
	b := m.bucketFor(id)
	var prev *entry[V]
	for e := m.buckets[b]; e != nil; e = e.next {
		if e.id == id {
			if prev == nil {
				m.buckets[b] = e.next
			} else {
				prev.next = e.next
			}
			m.numItems--
			return true
		}
		prev = e
	}
	return false
}

// grow rehashes every chain into the next bucket size in the sequence.
// It is a no-op once the sequence is exhausted (the table simply keeps
// taking longer chains, which only matters for meshes far beyond any
// practical subdivision target).
// Complexity: O(n) time, O(buckets) space.
func (m *Map[V]) grow() {
	next := -1
	for _, sz := range bucketSizes {
		if sz > len(m.buckets) {
			next = sz
			break
		}
	}
	if next < 0 {
		return
	}
	old := m.buckets
	m.buckets = make([]*entry[V], next)
	for _, head := range old {
		for e := head; e != nil; {
			nx := e.next
			b := m.bucketFor(e.id)
			e.next = m.buckets[b]
			m.buckets[b] = e
			e = nx
		}
	}
}

// All iterates every (id, value) pair across all buckets. Iteration order
// is unspecified beyond "every live entry exactly once"; callers that need
// determinism should collect and sort.
// Complexity: O(n + buckets) time for a full pass, O(1) space.
func (m *Map[V]) All() iter.Seq2[ID, V] {
	return func(yield func(ID, V) bool) {
		for _, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.id, e.val) {
					return
				}
			}
		}
	}
}

// Clear empties the map back to its smallest bucket size.
// Complexity: O(1) time — dropped chains are left to the collector.
func (m *Map[V]) Clear() {
	m.buckets = make([]*entry[V], bucketSizes[0])
	m.numItems = 0
}
