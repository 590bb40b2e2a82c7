package adjacency

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/wordgraph/internal/engerr"
)

func newList(t *testing.T) *List {
	t.Helper()
	l, err := New()
	require.NoError(t, err)
	return l
}

func TestAddNodeMintsIncreasingIDs(t *testing.T) {
	l := newList(t)
	a, err := l.AddNode()
	require.NoError(t, err)
	b, err := l.AddNode()
	require.NoError(t, err)
	require.Equal(t, uint32(0), a)
	require.Equal(t, uint32(1), b)
}

func TestAddEdgeRejectsZeroType(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	_, err := l.AddEdge(a, b, 0)
	require.ErrorIs(t, err, engerr.ErrInvalidEdgeType)
}

func TestAddEdgeDuplicateIsNoop(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()

	ok, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.False(t, ok, "adding the same triple twice must be a no-op")

	require.Len(t, l.GetAllEdges(), 1)
}

func TestSelfLoopDoesNotDoubleCreateNodeRecord(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()

	ok, err := l.AddEdge(a, a, NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, l.OutDegree(a, NullEdgeType))
	require.Equal(t, 1, l.InDegree(a, NullEdgeType))

	out := l.GetOutboundEdgesByType(a)
	require.Len(t, out, 1)
	require.Equal(t, a, out[0].Node)
}

func TestRemoveEdge(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	_, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)

	ok, err := l.RemoveEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, l.HasEdge(a, b, Type(NullEdgeType)))

	ok, err = l.RemoveEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.False(t, ok, "removing an absent edge is a no-op, not an error")
}

// TestCircleOfEdges builds a directed cycle 0->1->2->...->(n-1)->0 and
// checks every node has in/out degree 1 and the cycle is traversable
// via GetNodeIdsConnectedFrom.
func TestCircleOfEdges(t *testing.T) {
	l := newList(t)
	const n = 6
	ids := make([]uint32, n)
	for i := range ids {
		id, err := l.AddNode()
		require.NoError(t, err)
		ids[i] = id
	}
	for i := 0; i < n; i++ {
		_, err := l.AddEdge(ids[i], ids[(i+1)%n], NullEdgeType)
		require.NoError(t, err)
	}

	for i := 0; i < n; i++ {
		require.Equal(t, 1, l.OutDegree(ids[i], NullEdgeType))
		require.Equal(t, 1, l.InDegree(ids[i], NullEdgeType))
		neighbors := l.GetNodeIdsConnectedFrom(ids[i], AnyType())
		require.Equal(t, []uint32{ids[(i+1)%n]}, neighbors)
	}
	require.Len(t, l.GetAllEdges(), n)
}

func TestWildcardAndMultiTypeQueries(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	c, _ := l.AddNode()

	_, err := l.AddEdge(a, b, 1)
	require.NoError(t, err)
	_, err = l.AddEdge(a, c, 2)
	require.NoError(t, err)

	require.True(t, l.HasEdge(a, b, Type(1)))
	require.False(t, l.HasEdge(a, b, Type(2)))
	require.True(t, l.HasEdge(a, b, Types(2, 1)))
	require.True(t, l.HasEdge(a, b, AnyType()))

	all := l.GetNodeIdsConnectedFrom(a, AnyType())
	require.ElementsMatch(t, []uint32{b, c}, all)

	onlyType1 := l.GetNodeIdsConnectedFrom(a, Type(1))
	require.Equal(t, []uint32{b}, onlyType1)
}

func TestResizeNodesPreservesRecordsAndLists(t *testing.T) {
	l, err := New(WithNodeCapacity(2), WithEdgeCapacity(64))
	require.NoError(t, err)

	const n = 20
	ids := make([]uint32, n)
	for i := range ids {
		id, err := l.AddNode()
		require.NoError(t, err)
		ids[i] = id
		_, err = l.AddEdge(id, ids[0], NullEdgeType)
		require.NoError(t, err)
	}

	require.Greater(t, l.NodeCapacity(), uint32(2), "repeated AddNode should have triggered growth")
	for _, id := range ids {
		require.True(t, l.HasEdge(id, ids[0], Type(NullEdgeType)))
	}
	require.Equal(t, n, l.InDegree(ids[0], NullEdgeType))
}

func TestResizeEdgesDropsTombstonesAndPreservesLiveEdges(t *testing.T) {
	l, err := New(WithEdgeCapacity(4))
	require.NoError(t, err)

	a, _ := l.AddNode()
	b, _ := l.AddNode()
	c, _ := l.AddNode()

	_, err = l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	_, err = l.AddEdge(a, c, NullEdgeType)
	require.NoError(t, err)
	ok, err := l.RemoveEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.ResizeEdges(32))

	require.Equal(t, uint32(0), l.edges.Deletes(), "rebuild must drop tombstones")
	require.True(t, l.HasEdge(a, c, Type(NullEdgeType)))
	require.False(t, l.HasEdge(a, b, Type(NullEdgeType)))
	require.Len(t, l.GetAllEdges(), 1)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	_, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)

	snap := l.Serialize()
	restored, err := Deserialize(snap)
	require.NoError(t, err)

	require.True(t, restored.HasEdge(a, b, Type(NullEdgeType)))
	require.Equal(t, l.GetAllEdges(), restored.GetAllEdges())
}

func TestAllIteratesEveryLiveEdge(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	c, _ := l.AddNode()
	_, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	_, err = l.AddEdge(a, c, NullEdgeType)
	require.NoError(t, err)

	var seen []Triple
	l.All()(func(triple Triple) bool {
		seen = append(seen, triple)
		return true
	})
	require.ElementsMatch(t, l.GetAllEdges(), seen)
}

func TestAllStopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	l := newList(t)
	a, _ := l.AddNode()
	b, _ := l.AddNode()
	c, _ := l.AddNode()
	_, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	_, err = l.AddEdge(a, c, NullEdgeType)
	require.NoError(t, err)

	count := 0
	l.All()(func(Triple) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

// TestWithSharedMemoryBacksBuffersWithMMap checks that the
// shared-memory construction path is fully usable (not merely parsed),
// and that its buffers really are backed by a distinct region per List
// rather than aliasing nodemap.New/edgemap.New's private slices.
func TestWithSharedMemoryBacksBuffersWithMMap(t *testing.T) {
	l, err := New(WithSharedMemory(), WithNodeCapacity(4), WithEdgeCapacity(8))
	require.NoError(t, err)

	a, err := l.AddNode()
	require.NoError(t, err)
	b, err := l.AddNode()
	require.NoError(t, err)
	ok, err := l.AddEdge(a, b, NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, l.HasEdge(a, b, Type(NullEdgeType)))

	other, err := New(WithSharedMemory(), WithNodeCapacity(4), WithEdgeCapacity(8))
	require.NoError(t, err)
	_, err = other.AddNode()
	require.NoError(t, err)
	require.NotEqual(t, l.Serialize().NodeBuffer, other.Serialize().NodeBuffer, "two shared-memory Lists must not alias the same region")
}
