// SPDX-License-Identifier: MIT

// Package surf implements the topological store, the subdivision kernel,
// the normals pass, and the stitch/update utilities for a Catmull-Clark
// subdivision surface engine. Package handle supplies the underlying
// id -> entity lookup; package alloc supplies the pluggable allocation
// vtable for user-data regions; package element supplies componentwise
// sample arithmetic.
package surf

import (
	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
)

// Flags is a bitmask of per-entity state, carried on Vert, Edge, and Face.
type Flags uint32

const (
	// FlagEffected marks an entity or its neighborhood as changed this
	// sync and due for recomputation.
	FlagEffected Flags = 1 << iota
	// FlagChanged marks a vertex whose sample data (or seam flag) differs
	// from the previous snapshot.
	FlagChanged
	// FlagSeam marks a vertex carrying the caller-supplied seam tag. Unlike
	// FlagEffected/FlagChanged it is not per-sync transient: it survives
	// clearFlags and persists across syncs until a caller explicitly
	// changes it.
	FlagSeam
	// FlagExcluded marks an edge the first-pass specialization's second
	// pass should skip.
	FlagExcluded
	// FlagMyTrigger marks an edge whose first-pass midpoint has already
	// been written once by one incident vertex's opposite-edge pairing,
	// so the next write averages instead of overwriting.
	FlagMyTrigger
)

// Vert is the topological store's vertex record. Back-refs to incident
// edges/faces are unordered.
type Vert struct {
	Handle handle.ID
	Edges  []*Edge
	Faces  []*Face
	Flags  Flags

	// Levels holds one sample per subdivision level, Levels[0] the base
	// (caller-supplied) position.
	Levels []element.Element

	UserData []byte
}

// Edge is the topological store's edge record. V0/V1 are ordered;
// direction is meaningful for coordinate orientation.
type Edge struct {
	Handle handle.ID
	V0, V1 *Vert
	Faces  []*Face

	// Crease is the fractional sharpness in [0, subdivLevels].
	Crease float64
	Flags  Flags

	// Samples is the flat, per-level-packed sample array; use edgeBase(l)
	// to find level l's base offset and edgeSize(l) for its length.
	Samples []element.Element

	UserData []byte
}

// Boundary reports whether this edge has fewer than two incident faces.
// Complexity: O(1).
func (e *Edge) Boundary() bool { return len(e.Faces) < 2 }

// Sharpness returns EDGE_getSharpness(e, level): max(0, crease-level).
// Complexity: O(1).
func (e *Edge) Sharpness(level int) float64 {
	s := e.Crease - float64(level)
	if s < 0 {
		return 0
	}
	return s
}

// Face is the topological store's face record. Edge i connects Verts[i] to
// Verts[(i+1)%NumVerts].
type Face struct {
	Handle   handle.ID
	NumVerts int
	Verts    []*Vert
	Edges    []*Edge
	Flags    Flags

	// Centers holds the face-center sample per level (Centers[0] is
	// unused; centers first exist at level 1). Kept per-level rather than
	// as a single slot overwritten in place, so every already-computed
	// level stays readable while later levels are being built.
	Centers []element.Element

	// GridEdges[s] is the interior-edge sample row for corner s, sized to
	// gridSize(maxLevel) and addressed at level l with stride
	// gridSpacing(maxLevel, l); GridEdges[s][0] mirrors Centers.
	GridEdges [][]element.Element

	// GridFaces[s] is the gridSize(maxLevel) x gridSize(maxLevel) interior
	// sample matrix for corner s, flattened row-major; GridFaces[s][0]
	// mirrors GridEdges[s][0] mirrors Centers.
	GridFaces [][]element.Element

	UserData []byte
}

// gridAt returns the flattened (x,y) index into a GS x GS grid row.
// Complexity: O(1).
func gridAt(gs, x, y int) int { return x*gs + y }
