package nodemap

import (
	"math"

	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/sharedmap"
)

// Per-item word offsets, past the two Base reserves (next, type).
const (
	FirstIn  = 2
	FirstOut = 3
	LastIn   = 4
	LastOut  = 5
	// ItemSize is the total word width of a node record.
	ItemSize = 6
)

// HeaderNextID is the word offset of the node-id counter, the one word
// NodeTypeMap reserves past Base's capacity/count pair.
const HeaderNextID = 2

// HeaderSize is the total header width of a node map buffer.
const HeaderSize = sharedmap.BaseHeaderSize + 1

// MinCapacity is the smallest capacity a NodeMap may be constructed
// with (spec §4.2).
const MinCapacity = 2

// MaxCapacity returns the largest capacity representable at width
// without overflowing either the 31-bit offset space spec §4.2 derives
// MAX_CAPACITY from, or the word width itself.
func MaxCapacity(width wordbuf.Width) uint32 {
	const int31Max = uint64(1)<<31 - 1
	formula := (int31Max - uint64(HeaderSize)) / uint64(ItemSize*sharedmap.BucketSize)
	if wm := uint64(width.Max()); wm < formula {
		formula = wm
	}
	return uint32(formula)
}

// NodeMap is NodeTypeMap: spec §4.2.
type NodeMap struct {
	*sharedmap.Base
}

// New allocates a fresh NodeMap of the given capacity (raised to
// MinCapacity if smaller; ErrCapacityOverflow if above
// MaxCapacity(width)).
func New(width wordbuf.Width, capacity uint32) (*NodeMap, error) {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if max := MaxCapacity(width); capacity > max {
		return nil, engerr.Wrap(engerr.ErrCapacityOverflow, "node capacity %d exceeds max %d at width", capacity, max)
	}
	base, err := sharedmap.New(width, HeaderSize, ItemSize, capacity)
	if err != nil {
		return nil, err
	}
	return &NodeMap{Base: base}, nil
}

// NewOverBuffer initializes a fresh NodeMap inside a caller-supplied,
// already word-sized buffer (see sharedmap.NewOverBuffer) rather than
// allocating a private one — the shared-memory construction path.
func NewOverBuffer(width wordbuf.Width, buf wordbuf.Buffer, capacity uint32) (*NodeMap, error) {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if max := MaxCapacity(width); capacity > max {
		return nil, engerr.Wrap(engerr.ErrCapacityOverflow, "node capacity %d exceeds max %d at width", capacity, max)
	}
	base, err := sharedmap.NewOverBuffer(buf, HeaderSize, ItemSize, capacity)
	if err != nil {
		return nil, err
	}
	return &NodeMap{Base: base}, nil
}

// Open wraps an existing buffer as a NodeMap, validating its length
// against the capacity stored in its own header (ErrCorrupt on
// mismatch).
func Open(buf wordbuf.Buffer) (*NodeMap, error) {
	base, err := sharedmap.Open(buf, HeaderSize, ItemSize)
	if err != nil {
		return nil, err
	}
	return &NodeMap{Base: base}, nil
}

// NextID returns the next node id that GetID would mint, without
// consuming it.
func (m *NodeMap) NextID() uint32 { return m.Buf.Get(HeaderNextID) }

func (m *NodeMap) setNextID(v uint32) { m.Buf.Set(HeaderNextID, v) }

// GetID mints a fresh node id and post-increments the counter. This is
// the sole source of node ids; it does not itself create an item
// record — records are created lazily by Add on first (id, type) use.
func (m *NodeMap) GetID() uint32 {
	id := m.NextID()
	m.setNextID(id + 1)
	return id
}

// hashOf reduces a node id to a bucket index: the node hash is simply
// the id itself, per spec §4.2 — NodeMap performs the "modulo
// capacity" step the base Head() leaves to its caller.
func (m *NodeMap) hashOf(nodeID uint32) uint32 { return nodeID % m.Capacity() }

// AddressOf probes the chain rooted at hash(nodeID) for a record with
// the given type, returning its offset, or ok=false if none exists.
func (m *NodeMap) AddressOf(nodeID, edgeType uint32) (uint32, bool) {
	for addr := m.Head(m.hashOf(nodeID)); addr != 0; addr = m.Next(addr) {
		if m.TypeOf(addr) == edgeType {
			return addr, true
		}
	}
	return 0, false
}

// Add appends a new record for (nodeID, edgeType) and links it into
// nodeID's bucket chain. Fails with ErrInvalidNodeID unless nodeID <
// NextID().
func (m *NodeMap) Add(nodeID, edgeType uint32) (uint32, error) {
	if nodeID >= m.NextID() {
		return 0, engerr.Wrap(engerr.ErrInvalidNodeID, "node id %d was never minted (nextId=%d)", nodeID, m.NextID())
	}
	addr := m.NextAddress(0)
	m.Link(m.hashOf(nodeID), addr, edgeType)
	return addr, nil
}

// FirstIn returns the head of rec's inbound edge list (0 == empty).
func (m *NodeMap) FirstIn(rec uint32) uint32 { return m.Buf.Get(rec + FirstIn) }

// FirstOut returns the head of rec's outbound edge list (0 == empty).
func (m *NodeMap) FirstOut(rec uint32) uint32 { return m.Buf.Get(rec + FirstOut) }

// LastIn returns the tail of rec's inbound edge list (0 == empty).
func (m *NodeMap) LastIn(rec uint32) uint32 { return m.Buf.Get(rec + LastIn) }

// LastOut returns the tail of rec's outbound edge list (0 == empty).
func (m *NodeMap) LastOut(rec uint32) uint32 { return m.Buf.Get(rec + LastOut) }

// LinkIn appends edge to rec's inbound list, returning the previous
// tail (0 if the list was empty). The caller links edge.prevIn to the
// returned value on the edge side (EdgeMap.LinkIn).
func (m *NodeMap) LinkIn(rec, edge uint32) uint32 {
	if m.FirstIn(rec) == 0 {
		m.Buf.Set(rec+FirstIn, edge)
	}
	prevTail := m.LastIn(rec)
	m.Buf.Set(rec+LastIn, edge)
	return prevTail
}

// LinkOut is LinkIn's symmetric counterpart for the outbound list.
func (m *NodeMap) LinkOut(rec, edge uint32) uint32 {
	if m.FirstOut(rec) == 0 {
		m.Buf.Set(rec+FirstOut, edge)
	}
	prevTail := m.LastOut(rec)
	m.Buf.Set(rec+LastOut, edge)
	return prevTail
}

// UnlinkIn removes edge from rec's inbound list given its neighbors
// (prev, next) on the edge-level list, which the caller must obtain
// from edge.prevIn/edge.nextIn before unlinking the edge itself. This
// does not touch the edge-level prevIn/nextIn fields — that split is
// intentional (spec §9): edge-level list splicing is EdgeMap's job.
func (m *NodeMap) UnlinkIn(rec, edge, prev, next uint32) {
	if m.LastIn(rec) == edge {
		m.Buf.Set(rec+LastIn, prev)
	}
	if m.FirstIn(rec) == edge {
		m.Buf.Set(rec+FirstIn, next)
	}
}

// UnlinkOut is UnlinkIn's symmetric counterpart for the outbound list.
func (m *NodeMap) UnlinkOut(rec, edge, prev, next uint32) {
	if m.LastOut(rec) == edge {
		m.Buf.Set(rec+LastOut, prev)
	}
	if m.FirstOut(rec) == edge {
		m.Buf.Set(rec+FirstOut, next)
	}
}

// GetLoad reports the greater of node-id exhaustion pressure
// (NextID/Capacity) and ordinary hash density, for a hypothetical
// count. Passing Count() reproduces the current load.
func (m *NodeMap) GetLoad(count uint32) float64 {
	idLoad := float64(m.NextID()) / float64(m.Capacity())
	return math.Max(idLoad, m.Load(count))
}

// Records walks every item record on nodeID's bucket chain whose type
// satisfies match, yielding (recordAddr, recordType) pairs until yield
// returns false or the chain ends. Because a node record does not
// store its owning id (see package doc), this walks the full
// hash(nodeID) chain and trusts that nothing else collides onto it.
func (m *NodeMap) Records(nodeID uint32, match func(typ uint32) bool, yield func(rec, typ uint32) bool) {
	for addr := m.Head(m.hashOf(nodeID)); addr != 0; addr = m.Next(addr) {
		t := m.TypeOf(addr)
		if match(t) {
			if !yield(addr, t) {
				return
			}
		}
	}
}

// SeedNextID sets the node-id counter directly, without touching any
// item records. AdjacencyList's edge-resize path uses this to carry
// the id-minting state into a freshly allocated NodeMap whose records
// will be rebuilt lazily by re-adding the live edges.
func (m *NodeMap) SeedNextID(id uint32) { m.setNextID(id) }

// Set rebuilds m from source: a position-for-position item copy plus a
// delta rebase of the bucket table and every item's next pointer (via
// Base.CopyFrom), and the node-id counter. Each item's firstIn/firstOut/
// lastIn/lastOut words are copied unchanged: they are offsets into the
// edge map's buffer, which a node-map resize does not move.
// m.Capacity() must be >= source.Capacity().
func (m *NodeMap) Set(source *NodeMap) error {
	if err := m.Base.CopyFrom(source.Base); err != nil {
		return err
	}
	m.setNextID(source.NextID())
	return nil
}
