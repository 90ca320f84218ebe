package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ccgsurf/alloc"
)

func TestHeapAllocatorGrowPreservesPrefix(t *testing.T) {
	a := alloc.NewHeap()
	buf := a.Alloc(4)
	copy(buf, []byte{1, 2, 3, 4})

	buf = a.Realloc(buf, 4, 8)
	require.Len(t, buf, 8)
	require.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0}, buf)
}

func TestHeapAllocatorShrink(t *testing.T) {
	a := alloc.NewHeap()
	buf := a.Alloc(8)
	copy(buf, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	buf = a.Realloc(buf, 8, 3)
	require.Equal(t, []byte{1, 2, 3}, buf)
}

func TestHeapAllocatorFreeNoop(t *testing.T) {
	a := alloc.NewHeap()
	require.NotPanics(t, func() { a.Free(a.Alloc(16)) })
}
