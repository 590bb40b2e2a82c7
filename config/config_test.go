package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/wordgraph/adjacency"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
)

func TestLoadDecodesEngineBlock(t *testing.T) {
	e, err := Load("testdata/example.hcl")
	require.NoError(t, err)
	require.Equal(t, wordbuf.Width32, e.Width())
	require.Equal(t, uint32(64), e.NodeCapacity)
	require.Equal(t, uint32(256), e.EdgeCapacity)
	require.True(t, e.SharedMemory)
	require.Equal(t, map[string]string{"env": "staging", "team": "graph-infra"}, e.LabelStrings())
}

func TestLabelStringsHandlesAbsentLabels(t *testing.T) {
	e := &Engine{}
	require.Empty(t, e.LabelStrings())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("testdata/does-not-exist.hcl")
	require.Error(t, err)
}

func TestOptionsOmitsZeroCapacities(t *testing.T) {
	e := &Engine{WordWidth: "16"}
	require.Len(t, e.Options(), 1, "only WithWordWidth should be present")
}

func TestOptionsIncludesSharedMemoryWhenSet(t *testing.T) {
	e, err := Load("testdata/example.hcl")
	require.NoError(t, err)

	list, err := adjacency.New(e.Options()...)
	require.NoError(t, err)
	a, err := list.AddNode()
	require.NoError(t, err)
	b, err := list.AddNode()
	require.NoError(t, err)
	ok, err := list.AddEdge(a, b, adjacency.NullEdgeType)
	require.NoError(t, err)
	require.True(t, ok, "engine should be fully usable when constructed with the shared_memory knob")
}

func TestWidthDefaultsTo32(t *testing.T) {
	e := &Engine{}
	require.Equal(t, wordbuf.Width32, e.Width())
}
