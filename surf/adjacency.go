// SPDX-License-Identifier: MIT
package surf

// Adjacency-array maintenance: the V->edges, V->faces, and E->faces
// back-reference lists, updated on every incidence change. These are small
// linear operations; meshes are not expected to carry enough incident
// entities per vertex for this to matter.

func appendEdge(list []*Edge, e *Edge) []*Edge { return append(list, e) }
func appendFace(list []*Face, f *Face) []*Face { return append(list, f) }

func removeEdgeFromList(list []*Edge, e *Edge) []*Edge {
	for i, cur := range list {
		if cur == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeFaceFromList(list []*Face, f *Face) []*Face {
	for i, cur := range list {
		if cur == f {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// linkEdge records e as incident to both of its endpoints.
// Complexity: O(1) amortized.
func linkEdge(e *Edge) {
	e.V0.Edges = appendEdge(e.V0.Edges, e)
	e.V1.Edges = appendEdge(e.V1.Edges, e)
}

// unlinkEdge removes e from both endpoints' adjacency lists.
// Complexity: O(d) time, d the endpoint degree.
func unlinkEdge(e *Edge) {
	e.V0.Edges = removeEdgeFromList(e.V0.Edges, e)
	e.V1.Edges = removeEdgeFromList(e.V1.Edges, e)
}

// linkFace records f as incident to every vertex and edge it references.
// Complexity: O(numVerts) amortized.
func linkFace(f *Face) {
	for _, v := range f.Verts {
		v.Faces = appendFace(v.Faces, f)
	}
	for _, e := range f.Edges {
		e.Faces = appendFace(e.Faces, f)
	}
}

// unlinkFace removes f from every vertex's and edge's adjacency list.
// Complexity: O(numVerts x d) time.
func unlinkFace(f *Face) {
	for _, v := range f.Verts {
		v.Faces = removeFaceFromList(v.Faces, f)
	}
	for _, e := range f.Edges {
		e.Faces = removeFaceFromList(e.Faces, f)
	}
}

// effect marks flag on the entity without disturbing its other flags.
func (v *Vert) effect(flag Flags) { v.Flags |= flag }
func (e *Edge) effect(flag Flags) { e.Flags |= flag }
func (f *Face) effect(flag Flags) { f.Flags |= flag }

// has reports whether flag is set.
func (v *Vert) has(flag Flags) bool { return v.Flags&flag != 0 }
func (e *Edge) has(flag Flags) bool { return e.Flags&flag != 0 }
func (f *Face) has(flag Flags) bool { return f.Flags&flag != 0 }

// clearFlags clears the per-sync transient flags. Vert additionally
// preserves FlagSeam, the caller-tagged state that must survive a sync
// unless the caller explicitly changes it.
func (v *Vert) clearFlags() { v.Flags &^= FlagEffected | FlagChanged }
func (e *Edge) clearFlags() { e.Flags = 0 }
func (f *Face) clearFlags() { f.Flags = 0 }

// otherEndpoint returns the endpoint of e that is not v.
func (e *Edge) otherEndpoint(v *Vert) *Vert {
	if e.V0 == v {
		return e.V1
	}
	return e.V0
}
