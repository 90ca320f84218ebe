// SPDX-License-Identifier: MIT
package surf

import (
	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
)

// elemSize returns the per-element layer count; normalDataOffset and
// maskDataOffset index into this same element rather than extending it.
func (ss *SubSurf) elemSize() int { return ss.cfg.NumLayers }

func (ss *SubSurf) newElement() element.Element { return element.New(ss.elemSize()) }

func (ss *SubSurf) newUserData(n int) []byte {
	if n == 0 {
		return nil
	}
	return ss.cfg.Allocator.Alloc(n)
}

// newVert allocates a Vert with Levels sized to hold subdivLevels+1 samples.
// Complexity: O(levels x layers) time and space.
func (ss *SubSurf) newVert(id handle.ID, co element.Element) *Vert {
	v := &Vert{
		Handle:   id,
		Levels:   make([]element.Element, ss.L()+1),
		UserData: ss.newUserData(ss.cfg.VertUserSize),
	}
	for i := range v.Levels {
		v.Levels[i] = ss.newElement()
	}
	element.Copy(v.Levels[0], co)
	return v
}

// newEdge allocates an Edge with a flat per-level sample array and
// initializes level 0 from the endpoints' base positions.
// Complexity: O(ES x layers) time and space, where ES = edgeSize(L).
func (ss *SubSurf) newEdge(id handle.ID, v0, v1 *Vert, crease float64) *Edge {
	n := edgeTotalSamples(ss.L())
	e := &Edge{
		Handle:   id,
		V0:       v0,
		V1:       v1,
		Crease:   crease,
		Samples:  make([]element.Element, n),
		UserData: ss.newUserData(ss.cfg.EdgeUserSize),
	}
	for i := range e.Samples {
		e.Samples[i] = ss.newElement()
	}
	element.Copy(e.Sample(0, 0), v0.Levels[0])
	element.Copy(e.Sample(0, 1), v1.Levels[0])
	return e
}

// Sample returns the sample at (level, index) via the packed-offset
// formula; index ranges over [0, edgeSize(level)).
// Complexity: O(1).
func (e *Edge) Sample(level, index int) element.Element {
	return e.Samples[edgeBase(level)+index]
}

// newFace allocates a Face with grid storage sized to the finest level.
// Complexity: O(numVerts x GS^2 x layers) time and space, where GS = gridSize(L).
func (ss *SubSurf) newFace(id handle.ID, verts []*Vert, edges []*Edge) *Face {
	n := len(verts)
	gs := gridSize(ss.L())
	f := &Face{
		Handle:    id,
		NumVerts:  n,
		Verts:     verts,
		Edges:     edges,
		Centers:   make([]element.Element, ss.L()+1),
		GridEdges: make([][]element.Element, n),
		GridFaces: make([][]element.Element, n),
		UserData:  ss.newUserData(ss.cfg.FaceUserSize),
	}
	for i := range f.Centers {
		f.Centers[i] = ss.newElement()
	}
	for s := 0; s < n; s++ {
		f.GridEdges[s] = make([]element.Element, gs)
		for i := range f.GridEdges[s] {
			f.GridEdges[s][i] = ss.newElement()
		}
		f.GridFaces[s] = make([]element.Element, gs*gs)
		for i := range f.GridFaces[s] {
			f.GridFaces[s][i] = ss.newElement()
		}
	}
	return f
}

// GridEdgeAt returns corner s's interior-edge sample at level ℓ, position i
// in [0, gridSize(ℓ)), addressed via the finest-level stride.
// Complexity: O(1).
func (f *Face) GridEdgeAt(maxLevel, level, s, i int) element.Element {
	sp := gridSpacing(maxLevel, level)
	return f.GridEdges[s][i*sp]
}

// GridFaceAt returns corner s's interior-face sample at level ℓ, (x,y) in
// [0, gridSize(ℓ))^2, addressed via the finest-level stride.
// Complexity: O(1).
func (f *Face) GridFaceAt(maxLevel, level, s, x, y int) element.Element {
	sp := gridSpacing(maxLevel, level)
	gs := gridSize(maxLevel)
	return f.GridFaces[s][gridAt(gs, x*sp, y*sp)]
}
