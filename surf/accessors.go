// SPDX-License-Identifier: MIT
package surf

import (
	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
)

// Read-only traversal of the three maps, level-indexed
// coordinate/normal/user-data/age accessors, and read-only capability
// queries that reflect Config. Returns plain slices rather than exposing
// the handle.Map's iterator directly.

// Verts returns every vertex currently in the map. Order is unspecified.
// Complexity: O(V) time and space.
func (ss *SubSurf) Verts() []*Vert { return mapValues(ss.verts) }

// Edges returns every edge currently in the map. Order is unspecified.
// Complexity: O(E) time and space.
func (ss *SubSurf) Edges() []*Edge { return mapValues(ss.edges) }

// Faces returns every face currently in the map. Order is unspecified.
// Complexity: O(F) time and space.
func (ss *SubSurf) Faces() []*Face { return mapValues(ss.faces) }

// NumVerts, NumEdges, NumFaces report the current map sizes.
func (ss *SubSurf) NumVerts() int { return ss.verts.Len() }
func (ss *SubSurf) NumEdges() int { return ss.edges.Len() }
func (ss *SubSurf) NumFaces() int { return ss.faces.Len() }

// LookupVert, LookupEdge, LookupFace resolve a caller handle to its
// entity, returning nil for an unknown handle.
// Complexity: O(1) expected.
func (ss *SubSurf) LookupVert(id handle.ID) *Vert {
	v, ok := ss.verts.Lookup(id)
	if !ok {
		return nil
	}
	return v
}

func (ss *SubSurf) LookupEdge(id handle.ID) *Edge {
	e, ok := ss.edges.Lookup(id)
	if !ok {
		return nil
	}
	return e
}

func (ss *SubSurf) LookupFace(id handle.ID) *Face {
	f, ok := ss.faces.Lookup(id)
	if !ok {
		return nil
	}
	return f
}

// VertCoord returns v's sample at level, or nil if level is out of
// [0, subdivLevels].
// Complexity: O(1).
func (ss *SubSurf) VertCoord(v *Vert, level int) element.Element {
	if v == nil || level < 0 || level >= len(v.Levels) {
		return nil
	}
	return v.Levels[level]
}

// EdgeSample returns e's sample i at level, or nil if level or i is
// out of range.
// Complexity: O(1).
func (ss *SubSurf) EdgeSample(e *Edge, level, i int) element.Element {
	if e == nil || level < 0 || level > ss.L() {
		return nil
	}
	if i < 0 || i >= edgeSize(level) {
		return nil
	}
	return e.Sample(level, i)
}

// FaceCenter returns f's center sample at level, or nil if level is out of
// range ([1, subdivLevels] — a face has no center at level 0).
// Complexity: O(1).
func (ss *SubSurf) FaceCenter(f *Face, level int) element.Element {
	if f == nil || level < 1 || level >= len(f.Centers) {
		return nil
	}
	return f.Centers[level]
}

// FaceGrid returns f's corner-s grid sample at level, position (x, y), or
// nil if any index is out of range.
// Complexity: O(1).
func (ss *SubSurf) FaceGrid(f *Face, level, s, x, y int) element.Element {
	if f == nil || level < 1 || level > ss.L() || s < 0 || s >= f.NumVerts {
		return nil
	}
	gs := gridSize(level)
	if x < 0 || x >= gs || y < 0 || y >= gs {
		return nil
	}
	return f.GridFaceAt(ss.L(), level, s, x, y)
}

// VertUserData, EdgeUserData, FaceUserData return the entity's opaque
// user-data region. nil if the entity is nil.
// Complexity: O(1).
func (ss *SubSurf) VertUserData(v *Vert) []byte {
	if v == nil {
		return nil
	}
	return v.UserData
}

func (ss *SubSurf) EdgeUserData(e *Edge) []byte {
	if e == nil {
		return nil
	}
	return e.UserData
}

func (ss *SubSurf) FaceUserData(f *Face) []byte {
	if f == nil {
		return nil
	}
	return f.UserData
}

// VertAge, EdgeAge, FaceAge read the 4-byte little-endian age counter from
// an entity's user-data region at the configured offset. Returns -1 when
// age counting is disabled or the offset does not fit.
// Complexity: O(1).
func (ss *SubSurf) VertAge(v *Vert) int64 {
	if !ss.cfg.UseAgeCounts || v == nil {
		return -1
	}
	return readAge(v.UserData, ss.cfg.VertUserAgeOffset)
}

func (ss *SubSurf) EdgeAge(e *Edge) int64 {
	if !ss.cfg.UseAgeCounts || e == nil {
		return -1
	}
	return readAge(e.UserData, ss.cfg.EdgeUserAgeOffset)
}

func (ss *SubSurf) FaceAge(f *Face) int64 {
	if !ss.cfg.UseAgeCounts || f == nil {
		return -1
	}
	return readAge(f.UserData, ss.cfg.FaceUserAgeOffset)
}

func readAge(data []byte, offset int) int64 {
	if offset < 0 || offset+4 > len(data) {
		return -1
	}
	v := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
	return int64(v)
}

// Capability queries: read-only reflections of Config, elevated to
// accessor methods rather than an exported Config field read.
func (ss *SubSurf) UsesAgeCounts() bool     { return ss.cfg.UseAgeCounts }
func (ss *SubSurf) AllocMask() bool         { return ss.cfg.AllocMask }
func (ss *SubSurf) CalcVertNormals() bool   { return ss.cfg.CalcVertNormals }
func (ss *SubSurf) SimpleSubdiv() bool      { return ss.cfg.SimpleSubdiv }
func (ss *SubSurf) AllowEdgeCreation() bool { return ss.cfg.AllowEdgeCreation }
func (ss *SubSurf) NumLayers() int          { return ss.cfg.NumLayers }

// GridSize and EdgeSize are the exported wrappers around the unexported
// pure functions in grid.go.
// Complexity: O(1) each.
func GridSize(level int) int { return gridSize(level) }
func EdgeSize(level int) int { return edgeSize(level) }

// NumFinalVerts returns the vertex count of the fully-subdivided mesh at
// the finest level: every control vertex, the interior samples of every
// edge, one center per face, and each grid's interior-edge and
// interior-face samples.
// Complexity: O(1).
func (ss *SubSurf) NumFinalVerts() int {
	es := edgeSize(ss.L())
	gs := gridSize(ss.L())
	return ss.verts.Len() +
		ss.edges.Len()*(es-2) +
		ss.faces.Len() +
		ss.numGrids*((gs-2)+(gs-2)*(gs-2))
}

// NumFinalEdges returns the edge count of the fully-subdivided mesh at the
// finest level.
// Complexity: O(1).
func (ss *SubSurf) NumFinalEdges() int {
	es := edgeSize(ss.L())
	gs := gridSize(ss.L())
	return ss.edges.Len()*(es-1) +
		ss.numGrids*((gs-1)+2*(gs-2)*(gs-1))
}

// NumFinalFaces returns the quad count of the fully-subdivided mesh at the
// finest level: (gridSize-1)^2 cells per grid.
// Complexity: O(1).
func (ss *SubSurf) NumFinalFaces() int {
	gs := gridSize(ss.L())
	return ss.numGrids * (gs - 1) * (gs - 1)
}
