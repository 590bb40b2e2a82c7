package adjacency

import (
	"github.com/lvlath-labs/wordgraph/edgemap"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/nodemap"
)

// SerializedBuffers is the raw, word-width-tagged form of a List's two
// backing buffers (spec §7): exactly what a caller needs to persist to
// disk or hand to another process, and nothing else.
type SerializedBuffers struct {
	Width      wordbuf.Width
	NodeBuffer []byte
	EdgeBuffer []byte
}

// Serialize returns aliases of both backing buffers, per spec §5's
// shared resource policy: no copy is made, so any mutation of l after
// this call (addNode, addEdge, removeEdge, resize) is visible through
// the returned slices. A caller that needs an independent snapshot
// must copy the slices itself.
func (l *List) Serialize() SerializedBuffers {
	return SerializedBuffers{Width: l.width, NodeBuffer: l.nodes.Buf.Bytes(), EdgeBuffer: l.edges.Buf.Bytes()}
}

// Deserialize reconstructs a List from previously Serialized buffers,
// validating each against its own stored header (ErrCorrupt on length
// mismatch, per sharedmap.Open).
func Deserialize(s SerializedBuffers) (*List, error) {
	nodeBuf, err := wordbuf.Wrap(s.Width, s.NodeBuffer)
	if err != nil {
		return nil, err
	}
	edgeBuf, err := wordbuf.Wrap(s.Width, s.EdgeBuffer)
	if err != nil {
		return nil, err
	}

	nodes, err := nodemap.Open(nodeBuf)
	if err != nil {
		return nil, err
	}
	edges, err := edgemap.Open(edgeBuf)
	if err != nil {
		return nil, err
	}

	return &List{width: s.Width, nodes: nodes, edges: edges}, nil
}
