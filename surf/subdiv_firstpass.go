// SPDX-License-Identifier: MIT
package surf

import (
	"math"

	"github.com/katalvlaran/ccgsurf/element"
)

// firstPass computes level 0->1 via the modified Catmull-Clark variant:
// standard centroid/midpoint/vertex-update rules followed by edge
// reprojection, vertex fix-up, excluded-edge marking, a second-pass
// circular-arc correction, and face-center reprojection (steps 1-7).
// Complexity: O(V + E + numGrids) x O(layers) time for the whole pass.
func (ss *SubSurf) firstPass() {
	for _, e := range mapValues(ss.edges) {
		e.Flags &^= FlagExcluded | FlagMyTrigger
	}
	ss.computeFaceCenters(0)
	ss.computeEdgeSamples(0)
	ss.computeVertexUpdate(0)

	ss.edgeFirstPassReproject()
	ss.vertexFixUp()
	ss.syncEdgeEndpoints(0)
	ss.syncEdgeEndpoints(1)
	ss.markExcludedEdges()
	ss.edgeSecondPass()
	ss.faceCenterReproject()

	ss.computeFaceInteriors(1)
	ss.copyDown(1)
}

// edgeFirstPassReproject re-projects each edge's level-1 midpoint toward
// the level-0 chord, scaling the height off the level-0 chord midpoint by
// the ratio of the old chord length to the new (post vertex-update) chord
// length.
func (ss *SubSurf) edgeFirstPassReproject() {
	for _, e := range mapValues(ss.edges) {
		a0, b0 := e.V0.Levels[0], e.V1.Levels[0]
		a1, b1 := e.V0.Levels[1], e.V1.Levels[1]
		mid := e.Sample(1, 1)

		chordMid0 := ss.newElement()
		element.Midpoint(chordMid0, a0, b0)
		h := ss.newElement()
		element.Sub(h, mid, chordMid0)

		oldLen := chordLength(a0, b0)
		newLen := chordLength(a1, b1)
		if oldLen == 0 || newLen == 0 {
			continue
		}
		ratio := oldLen / newLen

		chordMid1 := ss.newElement()
		element.Midpoint(chordMid1, a1, b1)
		scaled := ss.newElement()
		element.Scale(scaled, h, ratio)
		element.Add(mid, chordMid1, scaled)
	}
}

func chordLength(a, b element.Element) float64 {
	d := element.New(len(a))
	element.Sub(d, a, b)
	return math.Sqrt(element.Dot(d, d))
}

// vertexFixUp copies each vertex's level-1 position back to level-0.
func (ss *SubSurf) vertexFixUp() {
	for _, v := range mapValues(ss.verts) {
		element.Copy(v.Levels[0], v.Levels[1])
	}
}

// markExcludedEdges tags FlagExcluded on every edge incident to a
// valence-5 vertex.
func (ss *SubSurf) markExcludedEdges() {
	for _, v := range mapValues(ss.verts) {
		if len(v.Edges) == 5 {
			for _, e := range v.Edges {
				e.effect(FlagExcluded)
			}
		}
	}
}

// edgeSecondPass applies the interp0 circular-arc correction at
// valence-4 vertices (opposite-edge pairing) and at valence-3 corners of
// a pentagon. Other valences, and vertices whose edges cannot be ordered
// into a consistent face-adjacency ring (non-manifold or boundary
// configurations this pass does not reach), keep their first-pass
// midpoints.
func (ss *SubSurf) edgeSecondPass() {
	for _, v := range mapValues(ss.verts) {
		switch len(v.Edges) {
		case 4:
			ss.secondPassValence4(v)
		case 3:
			ss.secondPassValence3Pentagon(v)
		}
	}
}

func (ss *SubSurf) secondPassValence4(v *Vert) {
	ring, ok := sortEdgesByFaceAdjacency(v, 4)
	if !ok {
		return
	}
	pairs := [2][2]int{{0, 2}, {1, 3}}
	for _, pair := range pairs {
		eA, eC := ring[pair[0]], ring[pair[1]]
		a := eA.otherEndpoint(v)
		c := eC.otherEndpoint(v)

		resA := ss.newElement()
		interp0(resA, a.Levels[0], v.Levels[0], c.Levels[0])
		resC := ss.newElement()
		interp0(resC, c.Levels[0], v.Levels[0], a.Levels[0])

		assignMidpoint(eA, resA)
		assignMidpoint(eC, resC)
	}
}

// secondPassValence3Pentagon handles a valence-3 vertex at the corner of a
// 5-sided face: the two edges shared with that pentagon correct each
// other, each taking the other's far vertex as interp0's c argument, the
// same swapped-argument shape as secondPassValence4. The third
// (non-pentagon) edge is left at its first-pass midpoint. Vertices whose
// faces include no pentagon fall through untouched.
func (ss *SubSurf) secondPassValence3Pentagon(v *Vert) {
	for _, f := range v.Faces {
		if f.NumVerts != 5 {
			continue
		}
		idx := indexOfVert(f.Verts, v)
		if idx < 0 {
			continue
		}
		eA := f.Edges[(idx-1+f.NumVerts)%f.NumVerts]
		eC := f.Edges[idx]

		a := eA.otherEndpoint(v)
		c := eC.otherEndpoint(v)

		resA := ss.newElement()
		interp0(resA, a.Levels[0], v.Levels[0], c.Levels[0])
		resC := ss.newElement()
		interp0(resC, c.Levels[0], v.Levels[0], a.Levels[0])

		assignMidpoint(eA, resA)
		assignMidpoint(eC, resC)
		return
	}
}

// faceCenterReproject recomputes each triangle/quad/pentagon's level-1
// center as the average of its (possibly second-pass-corrected) edge
// midpoints, so the center stays consistent with whatever the edge passes
// settled on. Faces with more than five sides keep the plain centroid.
func (ss *SubSurf) faceCenterReproject() {
	for _, f := range mapValues(ss.faces) {
		if f.NumVerts != 3 && f.NumVerts != 4 && f.NumVerts != 5 {
			continue
		}
		mids := make([]element.Element, f.NumVerts)
		for i, e := range f.Edges {
			mids[i] = e.Sample(1, 1)
		}
		element.AvgN(f.Centers[1], mids...)
	}
}

// assignMidpoint folds res into e's level-1 midpoint: the first call for a
// given edge (across both its endpoint vertices' second passes) replaces
// it outright and marks FlagMyTrigger; a second call blends with whatever
// is there. FlagExcluded only gates the final write, never the
// blend/trigger bookkeeping the other endpoint's pass still observes.
func assignMidpoint(e *Edge, res element.Element) {
	dst := e.Sample(1, 1)
	if e.has(FlagMyTrigger) {
		element.Midpoint(res, dst, res)
	} else {
		e.effect(FlagMyTrigger)
	}
	if !e.has(FlagExcluded) {
		element.Copy(dst, res)
	}
}

// sortEdgesByFaceAdjacency orders v's exactly-n incident edges into a
// cyclic ring where consecutive entries share an incident face, starting
// from an arbitrary edge. Returns ok=false if v does not have exactly n
// edges or the ring cannot be closed (non-manifold neighborhood).
func sortEdgesByFaceAdjacency(v *Vert, n int) ([]*Edge, bool) {
	if len(v.Edges) != n {
		return nil, false
	}
	order := make([]*Edge, 0, n)
	used := make(map[*Face]bool, n)
	cur := v.Edges[0]
	order = append(order, cur)
	for i := 1; i < n; i++ {
		next := adjacentEdgeAtVert(v, cur, used)
		if next == nil {
			return nil, false
		}
		order = append(order, next)
		cur = next
	}
	if adjacentEdgeAtVert(v, cur, used) != order[0] {
		return nil, false
	}
	return order, true
}

// adjacentEdgeAtVert finds the edge sharing an unused face with cur
// around v, and marks that face used.
func adjacentEdgeAtVert(v *Vert, cur *Edge, used map[*Face]bool) *Edge {
	for _, f := range cur.Faces {
		if used[f] {
			continue
		}
		idx := indexOfVert(f.Verts, v)
		if idx < 0 {
			continue
		}
		e1 := f.Edges[(idx-1+f.NumVerts)%f.NumVerts]
		e2 := f.Edges[idx]
		var other *Edge
		switch cur {
		case e1:
			other = e2
		case e2:
			other = e1
		default:
			continue
		}
		used[f] = true
		return other
	}
	return nil
}

func indexOfVert(verts []*Vert, v *Vert) int {
	for i, cur := range verts {
		if cur == v {
			return i
		}
	}
	return -1
}

// interp0 is the circular-arc midpoint construction: project aP onto ac,
// split off the perpendicular sagitta, and place the result along the
// chord offset by the half-chord/hypotenuse ratio.
// Complexity: O(layer count) time, O(layer count) space.
func interp0(dst, a, p, c element.Element) {
	n := len(a)
	ac := element.New(n)
	element.Sub(ac, c, a)
	aP := element.New(n)
	element.Sub(aP, p, a)

	acDotAc := element.Dot(ac, ac)
	if acDotAc == 0 {
		element.Copy(dst, p)
		return
	}
	proj := element.Dot(aP, ac) / acDotAc
	element.Scale(ac, ac, proj)

	sagitta := element.New(n)
	element.Sub(sagitta, aP, ac)

	halfChordSq := element.Dot(ac, ac)
	aPSq := element.Dot(aP, aP)
	if aPSq == 0 {
		element.Copy(dst, a)
		return
	}
	cosSq := sqrtRatio(halfChordSq / aPSq)

	element.Scale(sagitta, sagitta, 0.5+cosSq/4)
	element.Scale(ac, ac, cosSq/2)

	aNext := element.New(n)
	element.Add(aNext, a, ac)
	element.Add(dst, aNext, sagitta)
}

func sqrtRatio(r float64) float64 {
	if r < 0 {
		r = 0
	}
	return math.Sqrt(r)
}
