package surf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
	"github.com/katalvlaran/ccgsurf/surf"
)

func requireElemNear(t *testing.T, want element.Element, got element.Element, msgAndArgs ...any) {
	t.Helper()
	require.NotNil(t, got, msgAndArgs...)
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12, msgAndArgs...)
	}
}

// buildTwoQuads syncs two unit quads sharing the edge between verts 2 and
// 3, with the given crease on that shared edge, and runs ProcessSync.
// Layout: quad 200 spans x in [0,1], quad 201 spans x in [1,2], both with
// y in [0,1] and z = 0.
func buildTwoQuads(t *testing.T, levels int, crease float64) *surf.SubSurf {
	t.Helper()
	ss, err := surf.NewSubSurf(surf.WithSubdivLevels(levels))
	require.NoError(t, err)

	positions := map[handle.ID]element.Element{
		1: {0, 0, 0},
		2: {1, 0, 0},
		3: {1, 1, 0},
		4: {0, 1, 0},
		5: {2, 0, 0},
		6: {2, 1, 0},
	}
	require.NoError(t, ss.InitFullSync())
	for id := handle.ID(1); id <= 6; id++ {
		require.NoError(t, ss.SyncVert(id, positions[id], false))
	}
	edges := [][2]handle.ID{{1, 2}, {2, 3}, {3, 4}, {4, 1}, {2, 5}, {5, 6}, {6, 3}}
	for i, e := range edges {
		c := 0.0
		if e == [2]handle.ID{2, 3} {
			c = crease
		}
		require.NoError(t, ss.SyncEdge(handle.ID(100+i), e[0], e[1], c))
	}
	require.NoError(t, ss.SyncFace(200, []handle.ID{1, 2, 3, 4}))
	require.NoError(t, ss.SyncFace(201, []handle.ID{2, 5, 6, 3}))
	require.NoError(t, ss.ProcessSync())
	return ss
}

// TestQuadLevelOneWorkedValues pins the level-1 geometry of a single unit
// quad: the face center lands on the quad's middle, each corner moves in by
// the boundary rule 0.75*co + 0.25*mean(boundary neighbors), and each edge
// midpoint lands on the chord midpoint of its updated endpoints.
func TestQuadLevelOneWorkedValues(t *testing.T) {
	ss, corners := buildQuad(t, surf.WithSubdivLevels(2))
	f := ss.LookupFace(200)
	require.NotNil(t, f)

	requireElemNear(t, element.Element{0.5, 0.5, 0}, ss.FaceCenter(f, 1), "level-1 face center")

	wantCorners := []element.Element{
		{0.125, 0.125, 0},
		{0.875, 0.125, 0},
		{0.875, 0.875, 0},
		{0.125, 0.875, 0},
	}
	for i, id := range corners {
		v := ss.LookupVert(id)
		requireElemNear(t, wantCorners[i], ss.VertCoord(v, 1), "corner %d at level 1", i)
	}

	wantMids := []element.Element{
		{0.5, 0.125, 0},
		{0.875, 0.5, 0},
		{0.5, 0.875, 0},
		{0.125, 0.5, 0},
	}
	for i := 0; i < 4; i++ {
		e := ss.LookupEdge(handle.ID(100 + i))
		requireElemNear(t, wantMids[i], ss.EdgeSample(e, 1, 1), "edge %d midpoint at level 1", i)
	}
}

// TestQuadGridBordersContinuous checks that at the finest level every
// radial seam between adjacent quadrant grids of the same face carries the
// same samples on both sides, and that the grid rows bordering an edge
// equal the edge's canonical samples.
func TestQuadGridBordersContinuous(t *testing.T) {
	ss, _ := buildQuad(t, surf.WithSubdivLevels(2))
	f := ss.LookupFace(200)
	require.NotNil(t, f)

	level := 2
	gs := surf.GridSize(level)
	n := f.NumVerts
	for s := 0; s < n; s++ {
		prev := (s - 1 + n) % n
		for y := 0; y < gs; y++ {
			a := ss.FaceGrid(f, level, s, 0, y)
			b := ss.FaceGrid(f, level, prev, y, 0)
			requireElemNear(t, a, b, "radial seam between grids %d and %d at y=%d", s, prev, y)
		}
	}

	for s := 0; s < n; s++ {
		e := f.Edges[s]
		vS := f.Verts[s]
		for y := 0; y < gs; y++ {
			steps := gs - 1 - y
			idx := steps
			if e.V0 != vS {
				idx = surf.EdgeSize(level) - 1 - steps
			}
			requireElemNear(t, ss.EdgeSample(e, level, idx), ss.FaceGrid(f, level, s, gs-1, y),
				"grid border of corner %d vs edge sample %d", s, idx)
		}
	}
}

// TestCreaseOneSharpMidpoint checks the sharpness >= 1 path: the shared
// edge's level-1 midpoint is the plain chord midpoint of its updated
// endpoints.
func TestCreaseOneSharpMidpoint(t *testing.T) {
	ss := buildTwoQuads(t, 1, 1.0)
	e := ss.LookupEdge(101)
	require.NotNil(t, e)

	requireElemNear(t, element.Element{1, 0.5, 0}, ss.EdgeSample(e, 1, 1))

	mid := element.New(3)
	element.Midpoint(mid, ss.VertCoord(e.V0, 1), ss.VertCoord(e.V1, 1))
	requireElemNear(t, mid, ss.EdgeSample(e, 1, 1))
}

// TestCreaseBlendAtStandardLevel checks the fractional-sharpness blend at
// a standard (post-first-pass) level: with crease 1.5, the shared edge has
// sharpness 0.5 at level 1, so its level-2 midpoints blend the smooth
// q-average and the chord midpoint half-and-half. A crease of 2.0 keeps
// the pure chord midpoint instead.
func TestCreaseBlendAtStandardLevel(t *testing.T) {
	ss := buildTwoQuads(t, 2, 1.5)
	e := ss.LookupEdge(101)
	require.NotNil(t, e)
	fA := ss.LookupFace(200)
	fB := ss.LookupFace(201)

	s0 := ss.EdgeSample(e, 1, 0)
	s1 := ss.EdgeSample(e, 1, 1)
	q := element.New(3)
	element.AvgN(q, s0, s1, ss.FaceCenter(fA, 2), ss.FaceCenter(fB, 2))
	r := element.New(3)
	element.Midpoint(r, s0, s1)
	want := element.New(3)
	element.Lerp(want, q, r, 0.5)
	requireElemNear(t, want, ss.EdgeSample(e, 2, 1), "fractional blend at sharpness 0.5")

	ss2 := buildTwoQuads(t, 2, 2.0)
	e2 := ss2.LookupEdge(101)
	mid := element.New(3)
	element.Midpoint(mid, ss2.EdgeSample(e2, 1, 0), ss2.EdgeSample(e2, 1, 1))
	requireElemNear(t, mid, ss2.EdgeSample(e2, 2, 1), "integer crease keeps the chord midpoint")
}

// TestFinalMeshCounts pins the closed-form finest-level counts for a
// single quad at L=2: ES=5, GS=3, numGrids=4.
func TestFinalMeshCounts(t *testing.T) {
	ss, _ := buildQuad(t, surf.WithSubdivLevels(2))

	require.Equal(t, 25, ss.NumFinalVerts())
	require.Equal(t, 40, ss.NumFinalEdges())
	require.Equal(t, 16, ss.NumFinalFaces())

	// Euler characteristic of a disc: V - E + F = 1.
	require.Equal(t, 1, ss.NumFinalVerts()-ss.NumFinalEdges()+ss.NumFinalFaces())
}

// TestSyncProtocolOrdering checks the monotone Vert -> Edge -> Face state
// machine: phase regressions and protocol mismatches fail with
// ErrInvalidSyncState and leave the instance unmutated.
func TestSyncProtocolOrdering(t *testing.T) {
	ss, err := surf.NewSubSurf()
	require.NoError(t, err)

	require.ErrorIs(t, ss.SyncVert(1, element.Element{0, 0, 0}, false), surf.ErrInvalidSyncState,
		"sync call with no sync in progress")

	require.NoError(t, ss.InitFullSync())
	require.ErrorIs(t, ss.InitFullSync(), surf.ErrInvalidSyncState, "double init")

	require.NoError(t, ss.SyncVert(1, element.Element{0, 0, 0}, false))
	require.NoError(t, ss.SyncVert(2, element.Element{1, 0, 0}, false))
	require.NoError(t, ss.SyncEdge(10, 1, 2, 0))
	require.ErrorIs(t, ss.SyncVert(3, element.Element{1, 1, 0}, false), surf.ErrInvalidSyncState,
		"vert sync after edge phase regresses the state order")

	require.ErrorIs(t, ss.DeleteVert(1), surf.ErrInvalidSyncState,
		"partial-sync call during a full sync")

	require.NoError(t, ss.ProcessSync())
}

// TestQuadNormals checks the normals pass over a planar quad: every vertex
// normal is the +z unit vector (counter-clockwise winding in the xy
// plane), and the canonical edge normal rows agree.
func TestQuadNormals(t *testing.T) {
	ss, corners := buildQuad(t, surf.WithVertNormals(0))

	for _, id := range corners {
		v := ss.LookupVert(id)
		n := ss.VertNormal(v)
		require.NotNil(t, n)
		require.InDelta(t, 0, n[0], 1e-12)
		require.InDelta(t, 0, n[1], 1e-12)
		require.InDelta(t, 1, n[2], 1e-12)
	}

	for i := 0; i < 4; i++ {
		e := ss.LookupEdge(handle.ID(100 + i))
		for s := 0; s < surf.EdgeSize(ss.L()); s++ {
			n := ss.EdgeNormal(e, s)
			require.NotNil(t, n)
			length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
			require.InDelta(t, 1, length, 1e-12, "edge %d normal sample %d must be unit", i, s)
			require.InDelta(t, 1, n[2], 1e-12)
		}
	}

	f := ss.LookupFace(200)
	gs := surf.GridSize(ss.L())
	for s := 0; s < f.NumVerts; s++ {
		for x := 0; x < gs; x++ {
			for y := 0; y < gs; y++ {
				n := ss.GridNormal(f, s, x, y)
				require.NotNil(t, n)
				require.InDelta(t, 1, n[2], 1e-12, "grid %d (%d,%d)", s, x, y)
			}
		}
	}
}
