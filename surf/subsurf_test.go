package surf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
	"github.com/katalvlaran/ccgsurf/surf"
)

// buildQuad syncs a single planar quad (0,0,0)-(1,0,0)-(1,1,0)-(0,1,0),
// no creases, and runs ProcessSync. Returns the instance and the four
// corner handles in winding order.
func buildQuad(t *testing.T, opts ...surf.Option) (*surf.SubSurf, []handle.ID) {
	t.Helper()
	ss, err := surf.NewSubSurf(opts...)
	require.NoError(t, err)

	corners := []handle.ID{1, 2, 3, 4}
	positions := []element.Element{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}

	require.NoError(t, ss.InitFullSync())
	for i, id := range corners {
		require.NoError(t, ss.SyncVert(id, positions[i], false))
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, ss.SyncEdge(handle.ID(100+i), corners[i], corners[(i+1)%4], 0))
	}
	require.NoError(t, ss.SyncFace(200, corners))
	require.NoError(t, ss.ProcessSync())
	return ss, corners
}

func TestFullSyncSingleQuad(t *testing.T) {
	ss, corners := buildQuad(t, surf.WithSubdivLevels(2))

	require.Equal(t, 4, ss.NumVerts())
	require.Equal(t, 4, ss.NumEdges())
	require.Equal(t, 1, ss.NumFaces())
	require.Equal(t, 4, ss.NumGrids(), "numGrids = sum of numVerts(F)")

	f := ss.LookupFace(200)
	require.NotNil(t, f)
	for _, id := range corners {
		v := ss.LookupVert(id)
		require.NotNil(t, v)
	}
}

// TestReferentialIntegrityAfterSync checks that after ProcessSync every
// edge's endpoints are in the vertex map and list the edge back, and
// every face's verts/edges list the face back.
func TestReferentialIntegrityAfterSync(t *testing.T) {
	ss, _ := buildQuad(t)

	for _, e := range ss.Edges() {
		require.Same(t, ss.LookupVert(e.V0.Handle), e.V0)
		require.Same(t, ss.LookupVert(e.V1.Handle), e.V1)
		require.Contains(t, e.V0.Edges, e)
		require.Contains(t, e.V1.Edges, e)
	}
	for _, f := range ss.Faces() {
		for _, v := range f.Verts {
			require.Contains(t, v.Faces, f)
		}
		for _, e := range f.Edges {
			require.Contains(t, e.Faces, f)
		}
	}
}

// TestSetSubdivisionLevelsNoopSameLevel checks that setting the same level
// is a no-op, while a different level clears every entity.
func TestSetSubdivisionLevelsNoopSameLevel(t *testing.T) {
	ss, _ := buildQuad(t, surf.WithSubdivLevels(2))

	require.NoError(t, ss.SetSubdivisionLevels(2))
	require.Equal(t, 4, ss.NumVerts(), "same level is a no-op")

	require.NoError(t, ss.SetSubdivisionLevels(3))
	require.Equal(t, 0, ss.NumVerts(), "different level clears every entity")
	require.Equal(t, 3, ss.L())
}

func TestSetSubdivisionLevelsOutOfRange(t *testing.T) {
	ss, err := surf.NewSubSurf()
	require.NoError(t, err)
	require.ErrorIs(t, ss.SetSubdivisionLevels(12), surf.ErrInvalidValue)
	require.ErrorIs(t, ss.SetSubdivisionLevels(0), surf.ErrInvalidValue)
}

// TestPartialDeleteIncidentVertexFails checks that deleting a vertex
// still incident to an edge fails with InvalidValue and leaves the
// instance unchanged.
func TestPartialDeleteIncidentVertexFails(t *testing.T) {
	ss, corners := buildQuad(t)

	require.NoError(t, ss.InitPartialSync())
	err := ss.DeleteVert(corners[0])
	require.ErrorIs(t, err, surf.ErrInvalidValue)

	require.Equal(t, 4, ss.NumVerts(), "failed delete must not mutate the instance")
	require.NotNil(t, ss.LookupVert(corners[0]))
}

// TestSeamFlagPersistsAcrossPartialSync mirrors
// TestSeamFlagPersistsAcrossSync for the partial-sync protocol's
// FinishPartialSync finalization.
func TestSeamFlagPersistsAcrossPartialSync(t *testing.T) {
	ss, err := surf.NewSubSurf()
	require.NoError(t, err)

	require.NoError(t, ss.InitPartialSync())
	require.NoError(t, ss.SyncVertPartial(1, element.Element{0, 0, 0}, true))
	require.NoError(t, ss.FinishPartialSync())

	v := ss.LookupVert(1)
	require.NotNil(t, v)
	require.NotZero(t, v.Flags&surf.FlagSeam, "seam tag must survive FinishPartialSync's flag clear")
}

func TestPartialSyncDeleteFaceThenVertex(t *testing.T) {
	ss, corners := buildQuad(t)

	require.NoError(t, ss.InitPartialSync())
	require.NoError(t, ss.DeleteFace(200))
	for i := 0; i < 4; i++ {
		require.NoError(t, ss.DeleteEdge(handle.ID(100+i)))
	}
	for _, id := range corners {
		require.NoError(t, ss.DeleteVert(id))
	}
	require.NoError(t, ss.FinishPartialSync())

	require.Equal(t, 0, ss.NumVerts())
	require.Equal(t, 0, ss.NumEdges())
	require.Equal(t, 0, ss.NumFaces())
	require.Equal(t, 0, ss.NumGrids())
}

// TestRoundTripSameTopologyPreservesIdentity checks that a full sync
// declaring exactly the same (V, E, F) with the same positions leaves
// entity identities unchanged and clears every flag.
func TestRoundTripSameTopologyPreservesIdentity(t *testing.T) {
	ss, corners := buildQuad(t)
	originalFace := ss.LookupFace(200)
	originalVert := ss.LookupVert(corners[0])

	positions := []element.Element{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}
	require.NoError(t, ss.InitFullSync())
	for i, id := range corners {
		require.NoError(t, ss.SyncVert(id, positions[i], false))
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, ss.SyncEdge(handle.ID(100+i), corners[i], corners[(i+1)%4], 0))
	}
	require.NoError(t, ss.SyncFace(200, corners))
	require.NoError(t, ss.ProcessSync())

	require.Same(t, originalFace, ss.LookupFace(200))
	require.Same(t, originalVert, ss.LookupVert(corners[0]))
	for _, v := range ss.Verts() {
		require.Zero(t, v.Flags, "flags must be cleared after a successful sync")
	}
}

// TestIsolatedVertexIdentity checks that an isolated vertex's position is
// unchanged at every level.
func TestIsolatedVertexIdentity(t *testing.T) {
	ss, err := surf.NewSubSurf(surf.WithSubdivLevels(2))
	require.NoError(t, err)

	co := element.Element{3, 4, 5}
	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, co, false))
	require.NoError(t, ss.ProcessSync())

	v := ss.LookupVert(1)
	require.NotNil(t, v)
	for l := 0; l <= ss.L(); l++ {
		require.Equal(t, co, ss.VertCoord(v, l), "isolated vertex must stay at co at level %d", l)
	}
}

func TestIsolatedVertexNormal(t *testing.T) {
	ss, err := surf.NewSubSurf(surf.WithVertNormals(0))
	require.NoError(t, err)

	co := element.Element{1, 0, 0}
	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, co, false))
	require.NoError(t, ss.ProcessSync())

	v := ss.LookupVert(1)
	n := ss.VertNormal(v)
	require.NotNil(t, n)
	require.InDelta(t, 1.0, n[0], 1e-9)
	require.InDelta(t, 0.0, n[1], 1e-9)
	require.InDelta(t, 0.0, n[2], 1e-9)
}

func TestGridAndEdgeSizeWrappers(t *testing.T) {
	for l := 1; l <= 11; l++ {
		require.Equal(t, 1+(1<<uint(l)), surf.EdgeSize(l))
		require.Equal(t, (1<<uint(l))+1, surf.GridSize(l+1))
	}
}

func TestEdgeSharpnessClampedToZero(t *testing.T) {
	ss, corners := buildQuad(t, surf.WithSubdivLevels(3))
	e := ss.LookupEdge(100)
	require.NotNil(t, e)
	_ = corners

	// Crease was synced at 0, so sharpness is 0 at every level.
	for l := 0; l <= 3; l++ {
		require.Equal(t, 0.0, e.Sharpness(l))
	}
}

func TestSyncFaceMissingEdgeWithoutCreationFails(t *testing.T) {
	ss, err := surf.NewSubSurf()
	require.NoError(t, err)

	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, false))
	require.NoError(t, ss.SyncVert(2, element.Element{1, 0, 0}, false))
	require.NoError(t, ss.SyncVert(3, element.Element{1, 1, 0}, false))

	err = ss.SyncFace(10, []handle.ID{1, 2, 3})
	require.ErrorIs(t, err, surf.ErrInvalidValue, "no edges exist and AllowEdgeCreation is false")
}

// TestSeamFlagPersistsAcrossSync checks that a vertex's seam tag survives
// ProcessSync's end-of-sync flag clear: only the per-sync Effected/Changed
// flags are transient, not the caller-supplied seam tag.
func TestSeamFlagPersistsAcrossSync(t *testing.T) {
	ss, err := surf.NewSubSurf()
	require.NoError(t, err)

	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, true))
	require.NoError(t, ss.ProcessSync())

	v := ss.LookupVert(1)
	require.NotNil(t, v)
	require.NotZero(t, v.Flags&surf.FlagSeam, "seam tag must survive ProcessSync's flag clear")

	// A second full sync that reconfirms the same seam value and position
	// should find nothing changed and still leave the seam tag set.
	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, true))
	require.NoError(t, ss.ProcessSync())

	v = ss.LookupVert(1)
	require.NotZero(t, v.Flags&surf.FlagSeam, "seam tag must still be set after a confirming resync")

	// Dropping the seam flag on resync must clear it.
	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, false))
	require.NoError(t, ss.ProcessSync())

	v = ss.LookupVert(1)
	require.Zero(t, v.Flags&surf.FlagSeam, "seam tag must clear once the caller stops tagging it")
}

func TestSyncFaceWithEdgeCreationSynthesizesEdge(t *testing.T) {
	ss, err := surf.NewSubSurf(surf.WithEdgeCreation(0, nil))
	require.NoError(t, err)

	require.NoError(t, ss.InitFullSync())
	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, false))
	require.NoError(t, ss.SyncVert(2, element.Element{1, 0, 0}, false))
	require.NoError(t, ss.SyncVert(3, element.Element{1, 1, 0}, false))
	require.NoError(t, ss.SyncFace(10, []handle.ID{1, 2, 3}))
	require.NoError(t, ss.ProcessSync())

	require.Equal(t, 3, ss.NumEdges(), "three synthetic edges created for the triangle")
}
