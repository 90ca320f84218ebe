// SPDX-License-Identifier: MIT
package surf

import "github.com/katalvlaran/ccgsurf/element"

// runSubdivisionKernel computes level 0->1 via the first-pass
// specialization (subdiv_firstpass.go), then iterates the standard rules
// for level->level+1 up to L-1->L. It is a no-op on an
// empty mesh.
//
// This implementation recomputes every level for every entity currently in
// the maps on each call, rather than restricting work to the Effected set
// the partial-sync machinery marks out. The Effected/Changed flags are
// still fully maintained by the sync protocols; skipping unaffected
// regions here would be a performance optimization traded away for a much
// simpler and more obviously correct kernel.
// Complexity: O(levels x numGrids x GS^2 x layers) time overall.
func (ss *SubSurf) runSubdivisionKernel() {
	if ss.verts.Len() == 0 {
		return
	}
	ss.firstPass()
	for l := 1; l < ss.L(); l++ {
		ss.standardLevel(l)
	}
}

// standardLevel computes level l -> l+1 using the textbook rules.
func (ss *SubSurf) standardLevel(l int) {
	ss.computeFaceCenters(l)
	ss.computeEdgeSamples(l)
	ss.computeVertexUpdate(l)
	ss.syncEdgeEndpoints(l + 1)
	ss.computeFaceInteriors(l + 1)
	ss.copyDown(l + 1)
}

// syncEdgeEndpoints writes each edge's first and last canonical sample at
// level from its endpoint vertices' just-computed positions. The midpoint
// and interior samples are the edge pass's own output; the two ends always
// belong to the vertices.
// Complexity: O(E x layers) time.
func (ss *SubSurf) syncEdgeEndpoints(level int) {
	last := edgeSize(level) - 1
	parallelEach(mapValues(ss.edges), func(e *Edge) {
		element.Copy(e.Sample(level, 0), e.V0.Levels[level])
		element.Copy(e.Sample(level, last), e.V1.Levels[level])
	})
}

// computeFaceCenters fills Centers[l+1] for every face by averaging the
// numVerts "face-center-adjacent" current-level samples: for l==0 these are
// the raw base-level vertex positions (no grid exists yet); for l>=1 these
// are each corner's grid sample immediately diagonal from the center,
// GridFaceAt(L, l, s, 1, 1).
// Complexity: O(numGrids x layers) time.
func (ss *SubSurf) computeFaceCenters(l int) {
	parallelEach(mapValues(ss.faces), func(f *Face) {
		acc := make([]element.Element, f.NumVerts)
		for s := 0; s < f.NumVerts; s++ {
			if l == 0 {
				acc[s] = f.Verts[s].Levels[0]
			} else {
				acc[s] = f.GridFaceAt(ss.L(), l, s, 1, 1)
			}
		}
		element.AvgN(f.Centers[l+1], acc...)
	})
}

// computeEdgeSamples fills the level l+1 slice of every edge's packed
// sample array. Even positions 2i are the (possibly smoothed) continuation
// of old sample i; odd positions 2i+1 are brand-new midpoints inserted
// between old samples i and i+1.
// Complexity: O(E x ES x layers) time.
func (ss *SubSurf) computeEdgeSamples(l int) {
	parallelEach(mapValues(ss.edges), func(e *Edge) {
		oldN := edgeSize(l)
		for i := 0; i < oldN-1; i++ {
			ss.computeEdgeMidpoint(e, l, i)
		}
		for i := 1; i < oldN-1; i++ {
			ss.computeEdgeInteriorShift(e, l, i)
		}
	})
}

// computeEdgeMidpoint inserts the new sample between old samples i and i+1
// at the new level.
func (ss *SubSurf) computeEdgeMidpoint(e *Edge, l, i int) {
	v0 := e.Sample(l, i)
	v1 := e.Sample(l, i+1)
	dst := e.Sample(l+1, 2*i+1)

	if e.Boundary() || e.Sharpness(l) >= 1 {
		element.Midpoint(dst, v0, v1)
		return
	}

	faces := e.Faces
	terms := make([]element.Element, 0, 2+len(faces))
	terms = append(terms, v0, v1)
	for _, f := range faces {
		terms = append(terms, f.Centers[l+1])
	}
	q := ss.newElement()
	element.AvgN(q, terms...)
	r := ss.newElement()
	element.Midpoint(r, v0, v1)

	sharp := e.Sharpness(l)
	if sharp > 1 {
		sharp = 1
	}
	element.Lerp(dst, q, r, sharp)
}

// acrossEdgeSample returns the face-interior sample of f directly across
// e's canonical sample i, at level: the inward neighbor of the matching
// grid border position, or the radial strip's penultimate sample when i is
// the edge's physical midpoint (where the two corner grids meet).
func acrossEdgeSample(f *Face, e *Edge, maxLevel, level, i int) element.Element {
	s0 := faceEdgeSlot(f, e)
	if s0 < 0 {
		return nil
	}
	gs := gridSize(level)
	k := i
	if e.V0 != f.Verts[s0] {
		k = edgeSize(level) - 1 - i
	}
	switch {
	case k < gs-1:
		return f.GridFaceAt(maxLevel, level, s0, gs-2, gs-1-k)
	case k == gs-1:
		return f.GridEdgeAt(maxLevel, level, s0, gs-2)
	default:
		m := edgeSize(level) - 1 - k
		s1 := (s0 + 1) % f.NumVerts
		return f.GridFaceAt(maxLevel, level, s1, gs-1-m, gs-2)
	}
}

// computeEdgeInteriorShift recomputes the existing old sample i (not an
// endpoint) as its new-level position: nCo = (numFaces*co + q + r) /
// (2 + numFaces), q the mean of the incident faces' interior samples
// directly across the edge, r the midpoint of the two neighbors.
func (ss *SubSurf) computeEdgeInteriorShift(e *Edge, l, i int) {
	co := e.Sample(l, i)
	prev := e.Sample(l, i-1)
	next := e.Sample(l, i+1)
	dst := e.Sample(l+1, 2*i)

	if e.Boundary() {
		r := ss.newElement()
		element.Midpoint(r, prev, next)
		element.Lerp(dst, co, r, 0.25)
		return
	}

	numFaces := len(e.Faces)
	r := ss.newElement()
	element.Midpoint(r, prev, next)
	q := ss.newElement()
	across := make([]element.Element, 0, numFaces)
	for _, f := range e.Faces {
		if a := acrossEdgeSample(f, e, ss.L(), l, i); a != nil {
			across = append(across, a)
		}
	}
	if len(across) > 0 {
		element.AvgN(q, across...)
	}
	smooth := ss.newElement()
	sum := ss.newElement()
	element.Scale(sum, co, float64(numFaces))
	element.AddInPlace(sum, q)
	element.AddInPlace(sum, r)
	element.Scale(smooth, sum, 1.0/float64(2+numFaces))

	sharp := e.Sharpness(l)
	if sharp <= 0 {
		element.Copy(dst, smooth)
		return
	}
	if sharp > 1 {
		sharp = 1
	}
	maskSix := ss.newElement()
	six := ss.newElement()
	element.Scale(six, co, 6)
	element.AddInPlace(six, prev)
	element.AddInPlace(six, next)
	element.Scale(maskSix, six, 1.0/8.0)
	element.Lerp(dst, smooth, maskSix, sharp)
}

// computeVertexUpdate fills Levels[l+1] for every vertex.
// Complexity: O(sum of vertex degrees x layers) time.
func (ss *SubSurf) computeVertexUpdate(l int) {
	parallelEach(mapValues(ss.verts), func(v *Vert) {
		ss.updateOneVertex(v, l)
	})
}

func (ss *SubSurf) updateOneVertex(v *Vert, l int) {
	co := v.Levels[l]
	dst := v.Levels[l+1]
	n := len(v.Edges)

	if n == 0 || ss.cfg.SimpleSubdiv {
		element.Copy(dst, co)
		return
	}

	boundary := false
	for _, e := range v.Edges {
		if e.Boundary() {
			boundary = true
			break
		}
	}

	nCo := ss.newElement()
	switch {
	case boundary:
		boundaryEndpoints := make([]element.Element, 0, n)
		for _, e := range v.Edges {
			if e.Boundary() {
				boundaryEndpoints = append(boundaryEndpoints, e.otherEndpoint(v).Levels[l])
			}
		}
		mean := ss.newElement()
		element.AvgN(mean, boundaryEndpoints...)
		element.Lerp(nCo, co, mean, 0.25)
	default:
		faceCenters := make([]element.Element, len(v.Faces))
		for i, f := range v.Faces {
			faceCenters[i] = f.Centers[l+1]
		}
		meanFaceCenters := ss.newElement()
		element.AvgN(meanFaceCenters, faceCenters...)

		edgeEnds := make([]element.Element, n)
		for i, e := range v.Edges {
			edgeEns := e.otherEndpoint(v)
			edgeEnds[i] = edgeEns.Levels[l]
		}
		meanEdgeEnds := ss.newElement()
		element.AvgN(meanEdgeEnds, edgeEnds...)

		sum := ss.newElement()
		element.Scale(sum, co, float64(n-2))
		element.AddInPlace(sum, meanFaceCenters)
		element.AddInPlace(sum, meanEdgeEnds)
		element.Scale(nCo, sum, 1.0/float64(n))
	}

	sharpCount, avgSharp, allSharp := vertexSharpStats(v, l)
	seam := vertexIsSeam(v)

	if sharpCount > 1 || seam {
		var q element.Element
		if seam {
			q = ss.newElement()
			boundaryEnds := make([]element.Element, 0, n)
			for _, e := range v.Edges {
				if e.Boundary() {
					boundaryEnds = append(boundaryEnds, e.otherEndpoint(v).Levels[l])
				}
			}
			element.AvgN(q, boundaryEnds...)
			avgSharp = 1
		} else {
			q = ss.newElement()
			sharpEnds := make([]element.Element, 0, n)
			for _, e := range v.Edges {
				if e.Sharpness(l) > 0 {
					sharpEnds = append(sharpEnds, e.otherEndpoint(v).Levels[l])
				}
			}
			element.AvgN(q, sharpEnds...)
		}
		if sharpCount != 2 || allSharp || seam {
			element.Lerp(q, q, co, avgSharp)
		}
		r := ss.newElement()
		element.Lerp(r, q, co, 0.75)
		element.Lerp(nCo, nCo, r, avgSharp)
	}

	element.Copy(dst, nCo)
}

// vertexSharpStats returns (count of incident edges sharp at level l,
// their average sharpness clamped to 1, whether every incident edge is
// sharp).
func vertexSharpStats(v *Vert, l int) (int, float64, bool) {
	count := 0
	sum := 0.0
	for _, e := range v.Edges {
		if s := e.Sharpness(l); s > 0 {
			count++
			sum += s
		}
	}
	all := len(v.Edges) > 0 && count == len(v.Edges)
	avg := 0.0
	if count > 0 {
		avg = sum / float64(count)
	}
	if avg > 1 {
		avg = 1
	}
	return count, avg, all
}

// vertexIsSeam reports whether v's seam flag is set and it meets the
// boundary condition for seam blending: at least two of its edges are
// boundary and all its edges are boundary.
func vertexIsSeam(v *Vert) bool {
	if !v.has(FlagSeam) || len(v.Edges) == 0 {
		return false
	}
	boundaryCount := 0
	for _, e := range v.Edges {
		if e.Boundary() {
			boundaryCount++
		}
	}
	return boundaryCount >= 2 && boundaryCount == len(v.Edges)
}
