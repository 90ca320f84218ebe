// SPDX-License-Identifier: MIT
package surf

import "github.com/katalvlaran/ccgsurf/element"

// Stitch/update utilities. These expose the copy-down and grid-filling
// machinery the kernel already runs internally as standalone,
// caller-invokable operations — UpdateToFaces is the same copyDown the
// kernel runs at every level on the way to L, not a separate
// implementation.

// UpdateToFaces copies the canonical vertex/edge/face-center samples at
// level into every face's grid borders, corners, and center. This is the same copy used internally after each
// level's vertex/edge pass; exposed so a caller that only touched the
// canonical arrays directly can re-derive the grids.
// Complexity: O(numGrids x GS x layers) time.
func (ss *SubSurf) UpdateToFaces(level int) {
	ss.copyDown(level)
}

// UpdateFromFaces copies authoritative values out of face grids back into
// the canonical edge sample array, vertex level array, and face center,
// the inverse of UpdateToFaces. Every incident face writes each shared
// sample in turn; after a consistent copy-down they all hold the same
// value, so running UpdateFromFaces then UpdateToFaces at the same level
// reproduces bit-identical grids.
// Complexity: O(numGrids x GS x layers) time.
func (ss *SubSurf) UpdateFromFaces(level int) {
	if level < 1 {
		return
	}
	gs := gridSize(level)
	maxLevel := ss.L()
	for _, f := range mapValues(ss.faces) {
		n := f.NumVerts
		for s := 0; s < n; s++ {
			edgeS := f.Edges[s]
			prevE := f.Edges[(s-1+n)%n]
			vS := f.Verts[s]

			for y := 0; y < gs; y++ {
				dst := edgeSampleFromVert(edgeS, vS, level, gs-1-y)
				element.Copy(dst, f.GridFaceAt(maxLevel, level, s, gs-1, y))
			}
			for x := 0; x < gs; x++ {
				dst := edgeSampleFromVert(prevE, vS, level, gs-1-x)
				element.Copy(dst, f.GridFaceAt(maxLevel, level, s, x, gs-1))
			}
			element.Copy(vS.Levels[level], f.GridFaceAt(maxLevel, level, s, gs-1, gs-1))
			element.Copy(f.Centers[level], f.GridFaceAt(maxLevel, level, s, 0, 0))
		}
	}
}

// StitchFaces re-averages every shared sample (a face-grid corner sitting
// on a shared vertex, or a face-grid border position sitting on a shared
// edge) across all faces that reference it, then broadcasts the averaged
// value back into every sharing grid. A second call is a no-op: once
// every incident grid agrees, accumulating and re-dividing by the same
// count reproduces the same average.
// Complexity: O(numGrids x GS x layers + E x ES x layers) time.
func (ss *SubSurf) StitchFaces(level int) {
	if level < 1 {
		return
	}
	gs := gridSize(level)
	maxLevel := ss.L()

	parallelEach(mapValues(ss.verts), func(v *Vert) {
		if len(v.Faces) == 0 {
			return
		}
		acc := ss.newElement()
		for _, f := range v.Faces {
			s := indexOfVert(f.Verts, v)
			if s < 0 {
				continue
			}
			element.AddInPlace(acc, f.GridFaceAt(maxLevel, level, s, gs-1, gs-1))
		}
		element.Scale(acc, acc, 1.0/float64(len(v.Faces)))
		element.Copy(v.Levels[level], acc)
		for _, f := range v.Faces {
			s := indexOfVert(f.Verts, v)
			if s < 0 {
				continue
			}
			element.Copy(f.GridFaceAt(maxLevel, level, s, gs-1, gs-1), acc)
		}
	})

	parallelEach(mapValues(ss.edges), func(e *Edge) {
		if len(e.Faces) == 0 {
			return
		}
		n := edgeSize(level)
		views := make([][]element.Element, 0, len(e.Faces))
		for _, f := range e.Faces {
			if v := faceEdgeView(f, e, maxLevel, level, gs); v != nil {
				views = append(views, v)
			}
		}
		if len(views) == 0 {
			return
		}
		inv := 1.0 / float64(len(views))
		for i := 1; i < n-1; i++ {
			acc := ss.newElement()
			for _, v := range views {
				if v[i] != nil {
					element.AddInPlace(acc, v[i])
				}
			}
			element.Scale(acc, acc, inv)
			element.Copy(e.Sample(level, i), acc)
		}
	})

	ss.copyDown(level)
}

// faceEdgeView reads face f's two grid corners that border edge e — the
// row of the corner where f.Edges[s]==e, and the column of the next
// corner (whose prevE is that same edge) — and
// returns them reindexed into e's canonical V0-relative sample order, nil
// where f does not reference e at all.
// Complexity: O(GS) time, O(ES) space.
func faceEdgeView(f *Face, e *Edge, maxLevel, level, gs int) []element.Element {
	s0 := faceEdgeSlot(f, e)
	if s0 < 0 {
		return nil
	}
	n := f.NumVerts
	out := make([]element.Element, edgeSize(level))

	vA := f.Verts[s0]
	for y := 0; y < gs; y++ {
		idx := edgeIndexFromVert(e, vA, level, gs-1-y)
		out[idx] = f.GridFaceAt(maxLevel, level, s0, gs-1, y)
	}

	s1 := (s0 + 1) % n
	vB := f.Verts[s1]
	for x := 0; x < gs; x++ {
		idx := edgeIndexFromVert(e, vB, level, gs-1-x)
		out[idx] = f.GridFaceAt(maxLevel, level, s1, x, gs-1)
	}
	return out
}

// UpdateNormals recomputes just the normals pass, without re-running the
// subdivision kernel. A no-op when calcVertNormals is disabled.
// Complexity: O(numGrids x GS^2) time.
func (ss *SubSurf) UpdateNormals() {
	if !ss.cfg.CalcVertNormals {
		return
	}
	ss.computeNormals()
}

// UpdateLevels runs the subdivision kernel starting at fromLevel through
// the finest level L. fromLevel 0 re-runs the
// level-0 first-pass specialization; fromLevel >= 1 first copies that
// level's canonical vertex/edge/center samples back into the face grids
// (the finer levels' grids share that storage), then re-runs the standard
// per-level rules from that level on.
// Complexity: O(levels x numGrids x GS^2 x layers) time.
func (ss *SubSurf) UpdateLevels(fromLevel int) {
	if ss.verts.Len() == 0 {
		return
	}
	if fromLevel <= 0 {
		ss.firstPass()
		fromLevel = 1
	} else if fromLevel < ss.L() {
		ss.copyDown(fromLevel)
	}
	for l := fromLevel; l < ss.L(); l++ {
		ss.standardLevel(l)
	}
}
