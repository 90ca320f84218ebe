// SPDX-License-Identifier: MIT
package surf

import "github.com/katalvlaran/ccgsurf/element"

// edgeIndexFromVert converts "i steps in from vert's end" into e's
// canonical (always V0-relative) sample index at level.
func edgeIndexFromVert(e *Edge, vert *Vert, level, i int) int {
	if e.V0 == vert {
		return i
	}
	return edgeSize(level) - 1 - i
}

// edgeSampleFromVert returns e's sample i steps in from vert's end, at
// level. This lets every border-fill call name "the point i steps in from
// this corner's vertex" without caring whether vert is e.V0 or e.V1.
func edgeSampleFromVert(e *Edge, vert *Vert, level, i int) element.Element {
	return e.Sample(level, edgeIndexFromVert(e, vert, level, i))
}

// copyDown fills every face's per-corner grid borders, corners, center, and
// interior-edge-strip endpoints at level from the canonical Vert/Edge/Face
// data. For corner s: the row adjacent to the vertex corner holds edge
// Edges[s]'s samples (near vert Verts[s] at the corner, toward the
// midpoint at the matching edge-adjacent border); the column adjacent to
// the vertex corner holds the previous edge's samples the same way; the
// far corner is Verts[s] itself; the near corner is the face center. The
// corner's interior-edge strip (GridEdges[s]) runs from the face center
// (index 0) out to edge S's own physical midpoint (index gridSize-1,
// which is also Edges[s]'s sample index gridSize(level)-1 — the two
// corners sharing an edge each own half the edge, meeting there); its
// strictly-interior samples are filled by computeFaceInteriors, and
// mirrored here into the two grid borders that run along the same radial
// line: corner s's (x, 0) row and corner s+1's (0, y) column.
// Complexity: O(numGrids x GS x layers) time.
func (ss *SubSurf) copyDown(level int) {
	if level < 1 {
		return
	}
	gs := gridSize(level)
	maxLevel := ss.L()
	parallelEach(mapValues(ss.faces), func(f *Face) {
		n := f.NumVerts
		for s := 0; s < n; s++ {
			edgeS := f.Edges[s]
			prevE := f.Edges[(s-1+n)%n]
			vS := f.Verts[s]

			for y := 0; y < gs; y++ {
				v := edgeSampleFromVert(edgeS, vS, level, gs-1-y)
				element.Copy(f.GridFaceAt(maxLevel, level, s, gs-1, y), v)
			}
			for x := 0; x < gs; x++ {
				v := edgeSampleFromVert(prevE, vS, level, gs-1-x)
				element.Copy(f.GridFaceAt(maxLevel, level, s, x, gs-1), v)
			}
			element.Copy(f.GridFaceAt(maxLevel, level, s, gs-1, gs-1), vS.Levels[level])
			element.Copy(f.GridFaceAt(maxLevel, level, s, 0, 0), f.Centers[level])

			element.Copy(f.GridEdgeAt(maxLevel, level, s, 0), f.Centers[level])
			element.Copy(f.GridEdgeAt(maxLevel, level, s, gs-1), edgeS.Sample(level, gs-1))
		}
		for s := 0; s < n; s++ {
			next := (s + 1) % n
			for x := 1; x < gs-1; x++ {
				strip := f.GridEdgeAt(maxLevel, level, s, x)
				element.Copy(f.GridFaceAt(maxLevel, level, s, x, 0), strip)
				element.Copy(f.GridFaceAt(maxLevel, level, next, 0, x), strip)
			}
		}
	})
}

// computeFaceInteriors fills the strictly-interior GridFaces and GridEdges
// samples at nextLevel (everything copyDown doesn't touch: neither border,
// corner, center, nor strip-endpoint). Two passes over the just-completed
// old level's (nextLevel-1) grid:
//
//  1. insert: every new odd-indexed position is a 4-average of its
//     old-level neighbors (interior face midpoints, interior edge
//     midpoints, and the interior-face/interior-edge "cross" midpoints).
//  2. shift: every carried-over even-indexed (old) position is
//     re-projected as nCo = (co-q)*0.25 + r, with q the diagonal 4-average
//     and r the axis 4-average of the just-inserted new-level neighbors.
//
// nextLevel < 2 is a no-op: level 0 has no grid at all (gridSize is only
// meaningful from level 1 up), and level 1's grid is all border/corner/strip
// endpoint, so there is nothing for either pass to do until level 2.
// Complexity: O(numGrids x GS^2 x layers) time.
func (ss *SubSurf) computeFaceInteriors(nextLevel int) {
	if nextLevel < 2 {
		return
	}
	curLevel := nextLevel - 1
	gsOld := gridSize(curLevel)
	if gsOld < 2 {
		return
	}
	maxLevel := ss.L()

	parallelEach(mapValues(ss.faces), func(f *Face) {
		n := f.NumVerts

		// insert: interior face midpoints (new diagonal points).
		for s := 0; s < n; s++ {
			for y := 0; y < gsOld-1; y++ {
				for x := 0; x < gsOld-1; x++ {
					fx, fy := 1+2*x, 1+2*y
					element.Avg4(f.GridFaceAt(maxLevel, nextLevel, s, fx, fy),
						f.GridFaceAt(maxLevel, curLevel, s, x, y),
						f.GridFaceAt(maxLevel, curLevel, s, x+1, y),
						f.GridFaceAt(maxLevel, curLevel, s, x+1, y+1),
						f.GridFaceAt(maxLevel, curLevel, s, x, y+1))
				}
			}
		}

		// insert: interior edge midpoints (new GridEdges points), and the
		// interior-face/interior-edge cross midpoints. These read the
		// diagonal insert above, including the (s+1)%n neighbor corner of
		// the same face, so they run only after every corner's diagonal
		// insert has completed.
		for s := 0; s < n; s++ {
			for x := 0; x < gsOld-1; x++ {
				fx := 2*x + 1
				element.Avg4(f.GridEdgeAt(maxLevel, nextLevel, s, fx),
					f.GridEdgeAt(maxLevel, curLevel, s, x),
					f.GridEdgeAt(maxLevel, curLevel, s, x+1),
					f.GridFaceAt(maxLevel, nextLevel, (s+1)%n, 1, fx),
					f.GridFaceAt(maxLevel, nextLevel, s, fx, 1))
			}

			for x := 1; x < gsOld-1; x++ {
				for y := 0; y < gsOld-1; y++ {
					fx, fy := 2*x, 2*y+1
					element.Avg4(f.GridFaceAt(maxLevel, nextLevel, s, fx, fy),
						f.GridFaceAt(maxLevel, curLevel, s, x, y),
						f.GridFaceAt(maxLevel, curLevel, s, x, y+1),
						f.GridFaceAt(maxLevel, nextLevel, s, fx-1, fy),
						f.GridFaceAt(maxLevel, nextLevel, s, fx+1, fy))
				}
			}
			for y := 1; y < gsOld-1; y++ {
				for x := 0; x < gsOld-1; x++ {
					fx, fy := 2*x+1, 2*y
					element.Avg4(f.GridFaceAt(maxLevel, nextLevel, s, fx, fy),
						f.GridFaceAt(maxLevel, curLevel, s, x, y),
						f.GridFaceAt(maxLevel, curLevel, s, x+1, y),
						f.GridFaceAt(maxLevel, nextLevel, s, fx, fy-1),
						f.GridFaceAt(maxLevel, nextLevel, s, fx, fy+1))
				}
			}
		}

		// shift: re-project the carried-over (even-indexed) old positions
		// using the just-inserted new-level neighbors.
		for s := 0; s < n; s++ {
			for x := 1; x < gsOld-1; x++ {
				for y := 1; y < gsOld-1; y++ {
					fx, fy := 2*x, 2*y
					shiftInterior(ss, f.GridFaceAt(maxLevel, curLevel, s, x, y),
						f.GridFaceAt(maxLevel, nextLevel, s, fx, fy),
						[4]element.Element{
							f.GridFaceAt(maxLevel, nextLevel, s, fx-1, fy-1),
							f.GridFaceAt(maxLevel, nextLevel, s, fx+1, fy-1),
							f.GridFaceAt(maxLevel, nextLevel, s, fx+1, fy+1),
							f.GridFaceAt(maxLevel, nextLevel, s, fx-1, fy+1),
						},
						[4]element.Element{
							f.GridFaceAt(maxLevel, nextLevel, s, fx-1, fy),
							f.GridFaceAt(maxLevel, nextLevel, s, fx+1, fy),
							f.GridFaceAt(maxLevel, nextLevel, s, fx, fy-1),
							f.GridFaceAt(maxLevel, nextLevel, s, fx, fy+1),
						})
				}
			}

			for x := 1; x < gsOld-1; x++ {
				fx := 2 * x
				shiftInterior(ss, f.GridEdgeAt(maxLevel, curLevel, s, x),
					f.GridEdgeAt(maxLevel, nextLevel, s, fx),
					[4]element.Element{
						f.GridFaceAt(maxLevel, nextLevel, (s+1)%n, 1, fx-1),
						f.GridFaceAt(maxLevel, nextLevel, (s+1)%n, 1, fx+1),
						f.GridFaceAt(maxLevel, nextLevel, s, fx+1, 1),
						f.GridFaceAt(maxLevel, nextLevel, s, fx-1, 1),
					},
					[4]element.Element{
						f.GridEdgeAt(maxLevel, nextLevel, s, fx-1),
						f.GridEdgeAt(maxLevel, nextLevel, s, fx+1),
						f.GridFaceAt(maxLevel, nextLevel, (s+1)%n, 1, fx),
						f.GridFaceAt(maxLevel, nextLevel, s, fx, 1),
					})
			}
		}
	})
}

// shiftInterior re-projects the old sample co (the point being shifted) into
// dst via nCo = (co-q)*0.25 + r, with q the 4-average of diag and r the
// 4-average of axis. dst and co alias the same storage (dst *is* where co's
// old value lives, at a different level's stride) so q/r are computed before
// dst is overwritten.
func shiftInterior(ss *SubSurf, co, dst element.Element, diag, axis [4]element.Element) {
	q := ss.newElement()
	element.Avg4(q, diag[0], diag[1], diag[2], diag[3])
	r := ss.newElement()
	element.Avg4(r, axis[0], axis[1], axis[2], axis[3])

	nCo := ss.newElement()
	element.Sub(nCo, co, q)
	element.Scale(nCo, nCo, 0.25)
	element.AddInPlace(nCo, r)
	element.Copy(dst, nCo)
}
