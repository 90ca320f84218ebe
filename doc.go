// SPDX-License-Identifier: MIT

// Package ccgsurf implements a Catmull-Clark-style subdivision surface
// engine for polygonal meshes.
//
// Given a control mesh of vertices, edges (with optional creases/seams),
// and faces (arbitrary n-gons), it produces a multi-resolution subdivided
// mesh: per-level coordinates, optional smooth vertex normals, and a
// grid-based sampling layout suitable for downstream rendering or
// multi-resolution sculpting.
//
// The module is organized under four packages:
//
//	handle/  — the open-chained hash table mapping an opaque caller
//	           handle to an entity pointer
//	element/ — componentwise arithmetic over a packed per-vertex sample
//	alloc/   — the pluggable allocation vtable backing entity user-data
//	surf/    — the topological store, subdivision kernel, normals pass,
//	           and stitch/update utilities; this is where callers spend
//	           almost all their time
//
// A typical caller constructs a surf.SubSurf, runs a full sync
// (InitFullSync / SyncVert / SyncEdge / SyncFace / ProcessSync) to hand it
// a control mesh, then reads back per-level coordinates and normals
// through surf's accessors. Subsequent partial edits use
// InitPartialSync / SyncVertPartial / ... / FinishPartialSync instead of
// re-submitting the whole mesh.
//
// This package has no exported API of its own; it exists to document the
// module as a whole and to anchor `go doc`.
package ccgsurf
