// SPDX-License-Identifier: MIT
package surf

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/ccgsurf/element"
)

// Face, edge and vertex normal storage: one Element per grid sample
// (finest-level, same shape as GridFaces) plus one for each vertex and
// canonical edge sample.
type normalStore struct {
	vertNormals map[*Vert]element.Element
	edgeNormals map[*Edge][]element.Element
	gridNormals map[*Face][][]element.Element
}

// buildNormalStore allocates a fresh, zeroed normal store sized to the
// current entity set. Rebuilt wholesale on every computeNormals call
// rather than reused across syncs — consistent with runSubdivisionKernel
// recomputing every level unconditionally rather than tracking the
// Effected set; this sidesteps the bookkeeping a long-lived store would
// need whenever entities are added or removed between syncs.
// Complexity: O(V + E x ES + numGrids x GS^2) time and space.
func (ss *SubSurf) buildNormalStore() {
	gs := gridSize(ss.L())
	ns := &normalStore{
		vertNormals: make(map[*Vert]element.Element),
		edgeNormals: make(map[*Edge][]element.Element),
		gridNormals: make(map[*Face][][]element.Element),
	}
	for _, v := range mapValues(ss.verts) {
		ns.vertNormals[v] = element.New(3)
	}
	for _, e := range mapValues(ss.edges) {
		row := make([]element.Element, edgeSize(ss.L()))
		for i := range row {
			row[i] = element.New(3)
		}
		ns.edgeNormals[e] = row
	}
	for _, f := range mapValues(ss.faces) {
		grids := make([][]element.Element, f.NumVerts)
		for s := range grids {
			g := make([]element.Element, gs*gs)
			for i := range g {
				g[i] = element.New(3)
			}
			grids[s] = g
		}
		ns.gridNormals[f] = grids
	}
	ss.normals = ns
}

// computeNormals runs the normals pass at the finest level: per-cell
// gradient normals accumulated onto the four surrounding grid samples,
// stitched across face-internal quadrant seams, summed across faces at
// every shared vertex and edge border, then renormalized everywhere.
// Complexity: O(numGrids x GS^2) time, O(numGrids x GS^2) space for the store.
func (ss *SubSurf) computeNormals() {
	ss.buildNormalStore()
	gs := gridSize(ss.L())
	maxLevel := ss.L()

	parallelEach(mapValues(ss.faces), func(f *Face) {
		grids := ss.normals.gridNormals[f]
		for s := 0; s < f.NumVerts; s++ {
			accumulateGridNormals(f, maxLevel, s, grids[s], gs)
		}
		stitchFaceInternalSeams(f, grids, gs)
	})

	ss.reduceVertNormals(gs, maxLevel)
	ss.reduceEdgeNormals(gs, maxLevel)
	ss.normalizeGridNormals()
}

// accumulateGridNormals computes, for each grid cell (x,y) in
// [0,gs-1)^2, the face normal of its four corners and adds it to all
// four surrounding samples. The cross product and
// unit-normalize go through gonum/spatial/r3 rather than element's
// general-purpose componentwise ops — this is pure 3-vector geometry, the
// r3 package's actual purpose, unlike element.Element's wider per-layer
// arithmetic.
func accumulateGridNormals(f *Face, maxLevel, s int, grid []element.Element, gs int) {
	for x := 0; x < gs-1; x++ {
		for y := 0; y < gs-1; y++ {
			a := asVec(f.GridFaceAt(maxLevel, maxLevel, s, x, y))
			b := asVec(f.GridFaceAt(maxLevel, maxLevel, s, x+1, y))
			c := asVec(f.GridFaceAt(maxLevel, maxLevel, s, x+1, y+1))
			d := asVec(f.GridFaceAt(maxLevel, maxLevel, s, x, y+1))

			cr := r3.Cross(r3.Sub(d, b), r3.Sub(c, a))
			if r3.Norm(cr) != 0 {
				cr = r3.Unit(cr)
			}

			no0 := vecElement(cr)
			addNormal(grid[gridAt(gs, x, y)], no0)
			addNormal(grid[gridAt(gs, x+1, y)], no0)
			addNormal(grid[gridAt(gs, x+1, y+1)], no0)
			addNormal(grid[gridAt(gs, x, y+1)], no0)
		}
	}
}

// asVec reads an element.Element's first three layers as an r3.Vec.
func asVec(e element.Element) r3.Vec { return r3.Vec{X: e[0], Y: e[1], Z: e[2]} }

// vecElement packs an r3.Vec back into a fresh 3-layer element.Element.
func vecElement(v r3.Vec) element.Element { return element.Element{v.X, v.Y, v.Z} }

func addNormal(dst, no element.Element) {
	dst[0] += no[0]
	dst[1] += no[1]
	dst[2] += no[2]
}

// stitchFaceInternalSeams mirrors contributions across the seam between
// adjacent quadrants of the same face: a sample at (0, y) on corner s's
// grid borders corner (s-1)'s grid at (y, 0), since both lie along the
// same radial line from the face center toward edge s-1. The face center
// itself — position (0, 0) of every quadrant at once — is summed over all
// of them and broadcast back, rather than pairwise.
func stitchFaceInternalSeams(f *Face, grids [][]element.Element, gs int) {
	n := f.NumVerts
	for s := 0; s < n; s++ {
		prev := (s - 1 + n) % n
		for y := 1; y < gs; y++ {
			a := grids[s][gridAt(gs, 0, y)]
			b := grids[prev][gridAt(gs, y, 0)]
			sum := element.New(3)
			addNormal(sum, a)
			addNormal(sum, b)
			element.Copy(a, sum)
			element.Copy(b, sum)
		}
	}
	center := element.New(3)
	for s := 0; s < n; s++ {
		addNormal(center, grids[s][gridAt(gs, 0, 0)])
	}
	for s := 0; s < n; s++ {
		element.Copy(grids[s][gridAt(gs, 0, 0)], center)
	}
}

// reduceVertNormals sums each vertex's surrounding corner contributions
// across its incident faces, normalizes, and writes the result back both
// to the canonical per-vertex normal and to every incident face's matching
// grid corner. Isolated vertices fall back to normalize(position).
func (ss *SubSurf) reduceVertNormals(gs, maxLevel int) {
	parallelEach(mapValues(ss.verts), func(v *Vert) {
		dst := ss.normals.vertNormals[v]
		if len(v.Faces) == 0 {
			element.CopyXYZ(dst, v.Levels[maxLevel])
			element.Normalize(dst)
			return
		}
		element.Zero(dst)
		for _, f := range v.Faces {
			s := indexOfVert(f.Verts, v)
			if s < 0 {
				continue
			}
			grid := ss.normals.gridNormals[f][s]
			addNormal(dst, grid[gridAt(gs, gs-1, gs-1)])
		}
		element.Normalize(dst)
		for _, f := range v.Faces {
			s := indexOfVert(f.Verts, v)
			if s < 0 {
				continue
			}
			grid := ss.normals.gridNormals[f][s]
			element.Copy(grid[gridAt(gs, gs-1, gs-1)], dst)
		}
	})
}

// edgeNormalSlots collects, per canonical sample index of e, every normal
// slot of f's grids lying on that position: the row border of the corner
// owning e plus the column border of the next corner. The physical
// midpoint gets two slots (the two corner grids meet there); both hold the
// same intra-face stitched sum.
func (ss *SubSurf) edgeNormalSlots(f *Face, e *Edge, gs int) [][]element.Element {
	s0 := faceEdgeSlot(f, e)
	if s0 < 0 {
		return nil
	}
	maxLevel := ss.L()
	grids := ss.normals.gridNormals[f]
	slots := make([][]element.Element, edgeSize(maxLevel))

	vA := f.Verts[s0]
	for y := 0; y < gs; y++ {
		idx := edgeIndexFromVert(e, vA, maxLevel, gs-1-y)
		slots[idx] = append(slots[idx], grids[s0][gridAt(gs, gs-1, y)])
	}
	s1 := (s0 + 1) % f.NumVerts
	vB := f.Verts[s1]
	for x := 0; x < gs; x++ {
		idx := edgeIndexFromVert(e, vB, maxLevel, gs-1-x)
		slots[idx] = append(slots[idx], grids[s1][gridAt(gs, x, gs-1)])
	}
	return slots
}

// reduceEdgeNormals sums the matching border normals across all faces
// incident to each edge, broadcasts the sum back into every face's border,
// and fills the canonical per-edge normal row (ends from the endpoint
// vertices' reduced normals, interior normalized in place). Isolated edges
// fall back to normalize(position) per sample.
func (ss *SubSurf) reduceEdgeNormals(gs, maxLevel int) {
	parallelEach(mapValues(ss.edges), func(e *Edge) {
		row := ss.normals.edgeNormals[e]
		if len(e.Faces) == 0 {
			for i := range row {
				element.CopyXYZ(row[i], e.Sample(maxLevel, i))
				element.Normalize(row[i])
			}
			return
		}
		views := make([][][]element.Element, 0, len(e.Faces))
		for _, f := range e.Faces {
			if v := ss.edgeNormalSlots(f, e, gs); v != nil {
				views = append(views, v)
			}
		}
		n := len(row)
		for i := 1; i < n-1; i++ {
			element.Zero(row[i])
			for _, v := range views {
				if len(v[i]) > 0 {
					addNormal(row[i], v[i][0])
				}
			}
			for _, v := range views {
				for _, slot := range v[i] {
					element.Copy(slot, row[i])
				}
			}
			element.Normalize(row[i])
		}
		element.Copy(row[0], ss.normals.vertNormals[e.V0])
		element.Copy(row[n-1], ss.normals.vertNormals[e.V1])
	})
}

// normalizeGridNormals renormalizes every grid sample once all cross-face
// sums have been written back. Samples already holding a reduced unit
// normal (vertex corners, edge-row ends) are unchanged by this.
func (ss *SubSurf) normalizeGridNormals() {
	parallelEach(mapValues(ss.faces), func(f *Face) {
		grids := ss.normals.gridNormals[f]
		for s := range grids {
			for i := range grids[s] {
				element.Normalize(grids[s][i])
			}
		}
	})
}

func faceEdgeSlot(f *Face, e *Edge) int {
	for i, fe := range f.Edges {
		if fe == e {
			return i
		}
	}
	return -1
}

// VertNormal returns v's reduced normal, or nil if normals have not been
// computed (calcVertNormals disabled, or no sync has run yet).
// Complexity: O(1) expected.
func (ss *SubSurf) VertNormal(v *Vert) element.Element {
	if ss.normals == nil {
		return nil
	}
	return ss.normals.vertNormals[v]
}

// EdgeNormal returns e's normal sample i at the finest level, or nil if
// normals have not been computed.
// Complexity: O(1) expected.
func (ss *SubSurf) EdgeNormal(e *Edge, i int) element.Element {
	if ss.normals == nil {
		return nil
	}
	row := ss.normals.edgeNormals[e]
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

// GridNormal returns face f's normal at corner s, position (x, y) at the
// finest level, or nil if normals have not been computed.
// Complexity: O(1) expected.
func (ss *SubSurf) GridNormal(f *Face, s, x, y int) element.Element {
	if ss.normals == nil {
		return nil
	}
	grids, ok := ss.normals.gridNormals[f]
	if !ok || s < 0 || s >= len(grids) {
		return nil
	}
	gs := gridSize(ss.L())
	if x < 0 || x >= gs || y < 0 || y >= gs {
		return nil
	}
	return grids[s][gridAt(gs, x, y)]
}
