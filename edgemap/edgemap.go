package edgemap

import (
	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/sharedmap"
)

// Per-item word offsets, past the two Base reserves (next, type).
const (
	From    = 2
	To      = 3
	NextIn  = 4
	PrevIn  = 5
	NextOut = 6
	PrevOut = 7
	// ItemSize is the total word width of an edge record.
	ItemSize = 8
)

// HeaderDeletes is the word offset of the tombstone counter, the one
// word EdgeTypeMap reserves past Base's capacity/count pair.
const HeaderDeletes = 2

// HeaderSize is the total header width of an edge map buffer.
const HeaderSize = sharedmap.BaseHeaderSize + 1

// MinCapacity is the smallest capacity an EdgeMap may be constructed
// with (spec §4.3).
const MinCapacity = 2

// PeakCapacity is the capacity at which AdjacencyList's grow-factor
// interpolation has fully decayed to MIN_GROW_FACTOR (spec §4.4).
const PeakCapacity = 1 << 18

// MaxCapacity returns the largest capacity representable at width
// without overflowing the 31-bit offset space spec §4.3 derives
// MAX_CAPACITY from, or the word width itself.
func MaxCapacity(width wordbuf.Width) uint32 {
	const int31Max = uint64(1)<<31 - 1
	formula := (int31Max - uint64(HeaderSize)) / uint64(ItemSize*sharedmap.BucketSize)
	if wm := uint64(width.Max()); wm < formula {
		formula = wm
	}
	return uint32(formula)
}

// EdgeMap is EdgeTypeMap: spec §4.3.
type EdgeMap struct {
	*sharedmap.Base
}

// New allocates a fresh EdgeMap of the given capacity (raised to
// MinCapacity if smaller; ErrCapacityOverflow if above
// MaxCapacity(width)).
func New(width wordbuf.Width, capacity uint32) (*EdgeMap, error) {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if max := MaxCapacity(width); capacity > max {
		return nil, engerr.Wrap(engerr.ErrCapacityOverflow, "edge capacity %d exceeds max %d at width", capacity, max)
	}
	base, err := sharedmap.New(width, HeaderSize, ItemSize, capacity)
	if err != nil {
		return nil, err
	}
	return &EdgeMap{Base: base}, nil
}

// NewOverBuffer initializes a fresh EdgeMap inside a caller-supplied,
// already word-sized buffer (see sharedmap.NewOverBuffer) rather than
// allocating a private one — the shared-memory construction path.
func NewOverBuffer(width wordbuf.Width, buf wordbuf.Buffer, capacity uint32) (*EdgeMap, error) {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if max := MaxCapacity(width); capacity > max {
		return nil, engerr.Wrap(engerr.ErrCapacityOverflow, "edge capacity %d exceeds max %d at width", capacity, max)
	}
	base, err := sharedmap.NewOverBuffer(buf, HeaderSize, ItemSize, capacity)
	if err != nil {
		return nil, err
	}
	return &EdgeMap{Base: base}, nil
}

// Open wraps an existing buffer as an EdgeMap, validating its length
// against the capacity stored in its own header (ErrCorrupt on
// mismatch).
func Open(buf wordbuf.Buffer) (*EdgeMap, error) {
	base, err := sharedmap.Open(buf, HeaderSize, ItemSize)
	if err != nil {
		return nil, err
	}
	return &EdgeMap{Base: base}, nil
}

// Deletes returns the tombstone count: edges logically removed but not
// yet reclaimed by a rebuild.
func (m *EdgeMap) Deletes() uint32 { return m.Buf.Get(HeaderDeletes) }

func (m *EdgeMap) setDeletes(v uint32) { m.Buf.Set(HeaderDeletes, v) }

// Hash computes the bucket index for (from, to, typ) against this map's
// current capacity.
func (m *EdgeMap) Hash(from, to, typ uint32) uint32 { return Hash(from, to, typ, m.Capacity()) }

// NextAddress returns the offset of the next unused edge slot,
// accounting for both live items and tombstones — EdgeTypeMap's
// override of the base getNextAddress (spec §4.3).
func (m *EdgeMap) NextAddress() uint32 { return m.Base.NextAddress(m.Deletes()) }

// AddressOf walks hash's bucket chain for a record matching type, from
// and to exactly, returning its offset or ok=false.
func (m *EdgeMap) AddressOf(hash, from, to, typ uint32) (uint32, bool) {
	for addr := m.Head(hash); addr != 0; addr = m.Next(addr) {
		if m.TypeOf(addr) == typ && m.Buf.Get(addr+From) == from && m.Buf.Get(addr+To) == to {
			return addr, true
		}
	}
	return 0, false
}

// Add appends a new (from, to, typ) record at the next free slot and
// links it into hash's bucket chain.
func (m *EdgeMap) Add(hash, from, to, typ uint32) uint32 {
	addr := m.NextAddress()
	m.Link(hash, addr, typ)
	m.Buf.Set(addr+From, from)
	m.Buf.Set(addr+To, to)
	return addr
}

// From returns edge's source node id.
func (m *EdgeMap) From(edge uint32) uint32 { return m.Buf.Get(edge + From) }

// To returns edge's destination node id.
func (m *EdgeMap) To(edge uint32) uint32 { return m.Buf.Get(edge + To) }

// NextIn returns edge's successor in its to-node's inbound list.
func (m *EdgeMap) NextIn(edge uint32) uint32 { return m.Buf.Get(edge + NextIn) }

// PrevIn returns edge's predecessor in its to-node's inbound list.
func (m *EdgeMap) PrevIn(edge uint32) uint32 { return m.Buf.Get(edge + PrevIn) }

// NextOut returns edge's successor in its from-node's outbound list.
func (m *EdgeMap) NextOut(edge uint32) uint32 { return m.Buf.Get(edge + NextOut) }

// PrevOut returns edge's predecessor in its from-node's outbound list.
func (m *EdgeMap) PrevOut(edge uint32) uint32 { return m.Buf.Get(edge + PrevOut) }

// Delete tombstones edge: from/to are zeroed (type was already cleared
// by Unlink) and the tombstone counter increments. The slot is not
// reclaimed until the next rebuild.
func (m *EdgeMap) Delete(edge uint32) {
	m.Buf.Set(edge+From, 0)
	m.Buf.Set(edge+To, 0)
	m.setDeletes(m.Deletes() + 1)
}

// LinkIn extends edge's to-node inbound list by appending next after
// edge: edge.nextIn = next; next.prevIn = edge.
func (m *EdgeMap) LinkIn(edge, next uint32) {
	m.Buf.Set(edge+NextIn, next)
	m.Buf.Set(next+PrevIn, edge)
}

// LinkOut is LinkIn's symmetric counterpart for the outbound list.
func (m *EdgeMap) LinkOut(edge, next uint32) {
	m.Buf.Set(edge+NextOut, next)
	m.Buf.Set(next+PrevOut, edge)
}

// UnlinkIn splices edge out of its to-node inbound list using its own
// prevIn/nextIn, then clears both on edge.
func (m *EdgeMap) UnlinkIn(edge uint32) {
	prev, next := m.PrevIn(edge), m.NextIn(edge)
	if prev != 0 {
		m.Buf.Set(prev+NextIn, next)
	}
	if next != 0 {
		m.Buf.Set(next+PrevIn, prev)
	}
	m.Buf.Set(edge+PrevIn, 0)
	m.Buf.Set(edge+NextIn, 0)
}

// UnlinkOut is UnlinkIn's symmetric counterpart for the outbound list.
func (m *EdgeMap) UnlinkOut(edge uint32) {
	prev, next := m.PrevOut(edge), m.NextOut(edge)
	if prev != 0 {
		m.Buf.Set(prev+NextOut, next)
	}
	if next != 0 {
		m.Buf.Set(next+PrevOut, prev)
	}
	m.Buf.Set(edge+PrevOut, 0)
	m.Buf.Set(edge+NextOut, 0)
}
