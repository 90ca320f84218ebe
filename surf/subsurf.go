// SPDX-License-Identifier: MIT
package surf

import (
	"github.com/katalvlaran/ccgsurf/alloc"
	"github.com/katalvlaran/ccgsurf/handle"
)

// syncState tracks the full-sync protocol's monotone Vert -> Edge -> Face
// progression plus the idle state and the partial-sync state.
type syncState int

const (
	stateIdle syncState = iota
	stateFullVert
	stateFullEdge
	stateFullFace
	statePartial
)

// SubSurf is the top-level instance owning the three handle maps and all
// entity storage. The zero value is not
// usable; construct with NewSubSurf.
type SubSurf struct {
	cfg Config

	verts *handle.Map[*Vert]
	edges *handle.Map[*Edge]
	faces *handle.Map[*Face]

	numGrids int

	state syncState

	// old* hold the rotated-out previous snapshot during a full sync; nil
	// otherwise.
	oldVerts *handle.Map[*Vert]
	oldEdges *handle.Map[*Edge]
	oldFaces *handle.Map[*Face]

	// normals holds the finest-level normal arrays once computeNormals has
	// run at least once; nil until then (and stays nil if calcVertNormals
	// is disabled).
	normals *normalStore
}

// NewSubSurf returns a fresh, empty instance: defaults first, then the
// given Options in order (later options win), validated once at the end.
// Complexity: O(N) time for N options, O(1) space.
func NewSubSurf(opts ...Option) (*SubSurf, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Allocator == nil {
		cfg.Allocator = alloc.NewHeap()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ss := &SubSurf{
		cfg:   cfg,
		verts: handle.NewMap[*Vert](),
		edges: handle.NewMap[*Edge](),
		faces: handle.NewMap[*Face](),
	}
	return ss, nil
}

// L returns the finest subdivision level.
// Complexity: O(1).
func (ss *SubSurf) L() int { return ss.cfg.SubdivLevels }

// SetSubdivisionLevels changes the finest level. Setting the same level
// already in effect is a no-op; setting a different level clears every
// entity (their per-level storage is sized to the old level and cannot be
// reused in place).
// Complexity: O(1) time — the old maps are dropped wholesale, not walked.
func (ss *SubSurf) SetSubdivisionLevels(l int) error {
	cfg := ss.cfg
	cfg.SubdivLevels = l
	if err := cfg.validate(); err != nil {
		return err
	}
	if l == ss.cfg.SubdivLevels {
		return nil
	}
	ss.cfg.SubdivLevels = l
	ss.verts = handle.NewMap[*Vert]()
	ss.edges = handle.NewMap[*Edge]()
	ss.faces = handle.NewMap[*Face]()
	ss.numGrids = 0
	ss.state = stateIdle
	ss.normals = nil
	return nil
}

// Config returns a copy of the instance's configuration.
// Complexity: O(1).
func (ss *SubSurf) Config() Config { return ss.cfg }

// NumGrids returns Σ_F numVerts(F).
// Complexity: O(1) — recounted over all faces at sync completion.
func (ss *SubSurf) NumGrids() int { return ss.numGrids }
