// SPDX-License-Identifier: MIT
package surf

import (
	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
)

// InitFullSync rotates the current maps to the "old" snapshot, installs
// fresh empty maps, and opens the Vert phase of the full-sync protocol.
// It fails with ErrSyncAlreadyOpen if a sync is already in progress.
// Complexity: O(1) — map rotation swaps pointers.
func (ss *SubSurf) InitFullSync() error {
	if ss.state != stateIdle {
		return ErrSyncAlreadyOpen
	}
	ss.oldVerts, ss.verts = ss.verts, handle.NewMap[*Vert]()
	ss.oldEdges, ss.edges = ss.edges, handle.NewMap[*Edge]()
	ss.oldFaces, ss.faces = ss.faces, handle.NewMap[*Face]()
	ss.state = stateFullVert
	return nil
}

// checkPhase enforces the monotone Vert -> Edge -> Face state order: a call
// belonging to a phase already passed is a protocol regression, and the
// first call of a new phase advances the state.
func (ss *SubSurf) checkPhase(want syncState) error {
	if ss.state == stateIdle {
		return ErrNoSyncInProgress
	}
	if ss.state > want {
		return ErrSyncStateRegressed
	}
	ss.state = want
	return nil
}

// SyncVert registers an incoming vertex against the old snapshot.
// Complexity: O(layer count) time (sample compare/copy), O(1) expected lookups.
func (ss *SubSurf) SyncVert(id handle.ID, co element.Element, seam bool) error {
	if err := ss.checkPhase(stateFullVert); err != nil {
		return err
	}
	if _, exists := ss.verts.Lookup(id); exists {
		return ErrDuplicateVert
	}

	old, found := ss.oldVerts.Lookup(id)
	if !found {
		v := ss.newVert(id, co)
		if seam {
			v.effect(FlagSeam)
		}
		v.effect(FlagEffected)
		ss.verts.Insert(id, v)
		return nil
	}

	ss.oldVerts.Remove(id)
	wasSeam := old.has(FlagSeam)
	if !element.Equal(old.Levels[0], co) || wasSeam != seam {
		element.Copy(old.Levels[0], co)
		old.clearFlags()
		if seam {
			old.effect(FlagSeam)
		} else {
			old.Flags &^= FlagSeam
		}
		old.effect(FlagEffected | FlagChanged)
	} else {
		old.clearFlags()
	}
	ss.verts.Insert(id, old)
	return nil
}

// SyncEdge registers an incoming edge, resolving endpoints from the new
// vertex map (they must already be present).
// Complexity: O(1) expected; O(ES x layers) when a replacement edge is allocated.
func (ss *SubSurf) SyncEdge(id handle.ID, v0id, v1id handle.ID, crease float64) error {
	if err := ss.checkPhase(stateFullEdge); err != nil {
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

	old, found := ss.oldEdges.Lookup(id)
	differs := !found || old.V0.Handle != v0id || old.V1.Handle != v1id || old.Crease != crease
	if differs {
		e := ss.newEdge(id, v0, v1, crease)
		linkEdge(e)
		v0.effect(FlagEffected)
		v1.effect(FlagEffected)
		ss.edges.Insert(id, e)
		if found {
			ss.oldEdges.Remove(id)
			unlinkEdge(old)
		}
		return nil
	}

	ss.oldEdges.Remove(id)
	old.clearFlags()
	ss.edges.Insert(id, old)
	if v0.has(FlagChanged) || v1.has(FlagChanged) {
		v0.effect(FlagEffected)
		v1.effect(FlagEffected)
	}
	return nil
}

// findEdgeBetween searches a's adjacency list last-added-first for an edge
// to b; search order matters when duplicate edges exist between the same
// pair during partial updates.
func findEdgeBetween(a, b *Vert) *Edge {
	for i := len(a.Edges) - 1; i >= 0; i-- {
		e := a.Edges[i]
		if e.otherEndpoint(a) == b {
			return e
		}
	}
	return nil
}

// SyncFace registers an incoming face, resolving its vertices from the new
// vertex map and its edges by adjacency search (creating a synthetic edge
// when allowed and none is found).
// Complexity: O(numVerts x d) time, where d is the max vertex degree searched
// for connecting edges; plus O(numVerts x GS^2 x layers) when rebuilt.
func (ss *SubSurf) SyncFace(id handle.ID, vertIDs []handle.ID) error {
	if err := ss.checkPhase(stateFullFace); err != nil {
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

	old, found := ss.oldFaces.Lookup(id)
	topoChanged := !found || !sameFaceTopology(old, verts, edges)

	if topoChanged {
		f := ss.newFace(id, verts, edges)
		linkFace(f)
		for _, v := range verts {
			v.effect(FlagEffected)
		}
		ss.faces.Insert(id, f)
		if found {
			ss.oldFaces.Remove(id)
			unlinkFace(old)
		}
		return nil
	}

	ss.oldFaces.Remove(id)
	old.clearFlags()
	ss.faces.Insert(id, old)
	changed := false
	for _, v := range old.Verts {
		if v.has(FlagChanged) {
			changed = true
			break
		}
	}
	if changed {
		for _, v := range old.Verts {
			v.effect(FlagEffected)
		}
	}
	return nil
}

// sameFaceTopology reports whether old already has exactly this
// (numVerts, vertex-list, edge-list), by handle identity and order.
func sameFaceTopology(old *Face, verts []*Vert, edges []*Edge) bool {
	if old.NumVerts != len(verts) {
		return false
	}
	for i := range verts {
		if old.Verts[i].Handle != verts[i].Handle {
			return false
		}
		if old.Edges[i].Handle != edges[i].Handle {
			return false
		}
	}
	return true
}

// ProcessSync sweeps residual old-map entries, runs the subdivision kernel
// (which recomputes every entity, not only the effected set), clears
// flags, writes age counters, and returns to the idle state.
// Complexity: dominated by the kernel — O(levels x numGrids x GS^2 x layers)
// time — plus O(V + E + F) bookkeeping.
func (ss *SubSurf) ProcessSync() error {
	if ss.state == stateIdle || ss.state == statePartial {
		return ErrNoSyncInProgress
	}

	for _, f := range mapValues(ss.oldFaces) {
		unlinkFace(f)
		for _, v := range f.Verts {
			v.effect(FlagEffected)
		}
		for _, e := range f.Edges {
			e.effect(FlagEffected)
		}
	}
	for _, e := range mapValues(ss.oldEdges) {
		unlinkEdge(e)
		e.V0.effect(FlagEffected)
		e.V1.effect(FlagEffected)
	}

	ss.oldVerts, ss.oldEdges, ss.oldFaces = nil, nil, nil

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

// Complexity: O(V + E + F).
func (ss *SubSurf) clearAllFlags() {
	for _, v := range mapValues(ss.verts) {
		v.clearFlags()
	}
	for _, e := range mapValues(ss.edges) {
		e.clearFlags()
	}
	for _, f := range mapValues(ss.faces) {
		f.clearFlags()
	}
}

// Complexity: O(V + E + F).
func (ss *SubSurf) writeAgeCounters() {
	if !ss.cfg.UseAgeCounts {
		return
	}
	for _, v := range mapValues(ss.verts) {
		bumpAge(v.UserData, ss.cfg.VertUserAgeOffset)
	}
	for _, e := range mapValues(ss.edges) {
		bumpAge(e.UserData, ss.cfg.EdgeUserAgeOffset)
	}
	for _, f := range mapValues(ss.faces) {
		bumpAge(f.UserData, ss.cfg.FaceUserAgeOffset)
	}
}

// bumpAge increments the 4-byte little-endian age counter at offset within
// data, if data is large enough to hold it.
// Complexity: O(1).
func bumpAge(data []byte, offset int) {
	if offset < 0 || offset+4 > len(data) {
		return
	}
	v := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
	v++
	data[offset] = byte(v)
	data[offset+1] = byte(v >> 8)
	data[offset+2] = byte(v >> 16)
	data[offset+3] = byte(v >> 24)
}
