// SPDX-License-Identifier: MIT
package surf

import (
	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
)

// InitPartialSync opens the partial-sync protocol: free-order delete and
// re-sync calls against the current maps, no "old" snapshot rotation.
// Complexity: O(1).
func (ss *SubSurf) InitPartialSync() error {
	if ss.state != stateIdle {
		return ErrSyncAlreadyOpen
	}
	ss.state = statePartial
	return nil
}

func (ss *SubSurf) checkPartial() error {
	if ss.state != statePartial {
		return ErrWrongSyncProtocol
	}
	return nil
}

// DeleteVert removes a vertex with zero incident edges and faces.
// Complexity: O(1) expected.
func (ss *SubSurf) DeleteVert(id handle.ID) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	v, ok := ss.verts.Lookup(id)
	if !ok {
		return ErrVertexNotFound
	}
	if len(v.Edges) > 0 || len(v.Faces) > 0 {
		return ErrIncidentEntity
	}
	ss.verts.Remove(id)
	return nil
}

// DeleteEdge removes an edge with zero incident faces.
// Complexity: O(d) time to unlink from both endpoints.
func (ss *SubSurf) DeleteEdge(id handle.ID) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	e, ok := ss.edges.Lookup(id)
	if !ok {
		return ErrEdgeNotFound
	}
	if len(e.Faces) > 0 {
		return ErrIncidentEntity
	}
	unlinkEdge(e)
	ss.edges.Remove(id)
	return nil
}

// DeleteFace removes a face unconditionally, flagging its neighborhood
// Effected.
// Complexity: O(numVerts x d) time to unlink and flag the neighborhood.
func (ss *SubSurf) DeleteFace(id handle.ID) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	f, ok := ss.faces.Lookup(id)
	if !ok {
		return ErrFaceNotFound
	}
	unlinkFace(f)
	for _, v := range f.Verts {
		v.effect(FlagEffected)
	}
	for _, e := range f.Edges {
		e.effect(FlagEffected)
	}
	ss.faces.Remove(id)
	return nil
}

// propagateTwoRings marks v, its incident edges' other endpoints, and its
// incident faces' vertices all Effected, propagating two rings out from a
// re-synced vertex.
// Complexity: O(d + incident face sizes).
func propagateTwoRings(v *Vert) {
	v.effect(FlagEffected)
	for _, e := range v.Edges {
		e.effect(FlagEffected)
		e.otherEndpoint(v).effect(FlagEffected)
	}
	for _, f := range v.Faces {
		f.effect(FlagEffected)
		for _, fv := range f.Verts {
			fv.effect(FlagEffected)
		}
	}
}

// SyncVertPartial inserts or updates a vertex against the current map.
// Complexity: O(layer count + two-ring size) time.
func (ss *SubSurf) SyncVertPartial(id handle.ID, co element.Element, seam bool) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	v, found := ss.verts.Lookup(id)
	if !found {
		nv := ss.newVert(id, co)
		if seam {
			nv.effect(FlagSeam)
		}
		nv.effect(FlagEffected)
		ss.verts.Insert(id, nv)
		return nil
	}

	wasSeam := v.has(FlagSeam)
	if element.Equal(v.Levels[0], co) && wasSeam == seam {
		return nil
	}
	element.Copy(v.Levels[0], co)
	if seam {
		v.effect(FlagSeam)
	} else {
		v.Flags &^= FlagSeam
	}
	v.effect(FlagChanged)
	propagateTwoRings(v)
	return nil
}

// SyncEdgePartial inserts or replaces an edge against the current map.
// Complexity: O(1) expected; O(ES x layers) when replaced.
func (ss *SubSurf) SyncEdgePartial(id, v0id, v1id handle.ID, crease float64) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	v0, ok := ss.verts.Lookup(v0id)
	if !ok {
		return ErrVertexNotFound
	}
	v1, ok := ss.verts.Lookup(v1id)
	if !ok {
		return ErrVertexNotFound
	}
	if v0 == v1 {
		return ErrSelfLoopEdge
	}

	old, found := ss.edges.Lookup(id)
	differs := !found || old.V0.Handle != v0id || old.V1.Handle != v1id || old.Crease != crease
	if !differs {
		if v0.has(FlagChanged) || v1.has(FlagChanged) {
			v0.effect(FlagEffected)
			v1.effect(FlagEffected)
		}
		return nil
	}

	if found {
		unlinkEdge(old)
		ss.edges.Remove(id)
	}
	e := ss.newEdge(id, v0, v1, crease)
	linkEdge(e)
	v0.effect(FlagEffected)
	v1.effect(FlagEffected)
	ss.edges.Insert(id, e)
	return nil
}

// SyncFacePartial inserts or replaces a face against the current map.
// Complexity: O(numVerts x d) time; plus O(numVerts x GS^2 x layers) when rebuilt.
func (ss *SubSurf) SyncFacePartial(id handle.ID, vertIDs []handle.ID) error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	n := len(vertIDs)
	verts := make([]*Vert, n)
	for i, vid := range vertIDs {
		v, ok := ss.verts.Lookup(vid)
		if !ok {
			return ErrVertexNotFound
		}
		verts[i] = v
	}

	edges := make([]*Edge, n)
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		e := findEdgeBetween(a, b)
		if e == nil {
			if !ss.cfg.AllowEdgeCreation {
				return ErrNoEdgeForFace
			}
			e = ss.newEdge(-1, a, b, ss.cfg.DefaultCreaseValue)
			copy(e.UserData, ss.cfg.DefaultEdgeUserData)
			linkEdge(e)
			ss.edges.Insert(-1, e)
		}
		edges[i] = e
	}

	old, found := ss.faces.Lookup(id)
	if found && sameFaceTopology(old, verts, edges) {
		return nil
	}
	if found {
		unlinkFace(old)
		ss.faces.Remove(id)
	}
	f := ss.newFace(id, verts, edges)
	linkFace(f)
	for _, v := range verts {
		v.effect(FlagEffected)
	}
	ss.faces.Insert(id, f)
	return nil
}

// FinishPartialSync runs the subdivision kernel (which recomputes every
// entity, not only the effected set accumulated during the partial sync),
// clears flags, writes age counters,
// and returns to the idle state. This mirrors ProcessSync's finalization
// duties, giving the partial protocol the same explicit closing call full
// sync gets from ProcessSync.
// Complexity: same as ProcessSync — dominated by the kernel.
func (ss *SubSurf) FinishPartialSync() error {
	if err := ss.checkPartial(); err != nil {
		return err
	}
	ss.numGrids = 0
	for _, f := range mapValues(ss.faces) {
		ss.numGrids += f.NumVerts
	}
	ss.runSubdivisionKernel()
	if ss.cfg.CalcVertNormals {
		ss.computeNormals()
	}
	ss.clearAllFlags()
	ss.writeAgeCounters()
	ss.state = stateIdle
	return nil
}
