package sharedmap

import (
	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
)

// BucketSize is the target load-factor reservation of items per bucket
// (spec §3: BUCKET_SIZE = 2).
const BucketSize = 2

// Per-item word offsets shared by every record kind. Subclasses place
// their own fields at offsets >= 2.
const (
	ItemNext = 0
	ItemType = 1
)

// Header word offsets common to every map: word 0 is always capacity,
// word 1 is always count. Subclasses reserve further words (NodeTypeMap
// reserves word 2 for nextId, EdgeTypeMap reserves word 2 for deletes).
const (
	HeaderCapacity = 0
	HeaderCount    = 1
	// BaseHeaderSize is the header width of Base alone; NodeTypeMap and
	// EdgeTypeMap add one more word each, so their HeaderSize is 3.
	BaseHeaderSize = 2
)

// Length computes the total word length of a map's buffer for the given
// header size, item size, and capacity, matching spec §3's layout:
//
//	[ header | bucket-table (capacity words) | item region (capacity*BucketSize*itemSize words) ]
func Length(headerSize, itemSize, capacity uint32) uint32 {
	return headerSize + capacity + itemSize*BucketSize*capacity
}

// Base is the shared-buffer hash map primitive of spec §4.1.
type Base struct {
	Buf        wordbuf.Buffer
	HeaderSize uint32
	ItemSize   uint32
}

// New allocates a fresh Base of the requested width, header size, item
// size and capacity; the bucket table and item region start zeroed
// (offset 0 == null everywhere).
func New(width wordbuf.Width, headerSize, itemSize, capacity uint32) (*Base, error) {
	buf, err := wordbuf.New(width, Length(headerSize, itemSize, capacity))
	if err != nil {
		return nil, err
	}
	buf.Set(HeaderCapacity, capacity)
	return &Base{Buf: buf, HeaderSize: headerSize, ItemSize: itemSize}, nil
}

// NewOverBuffer initializes a fresh Base inside a caller-supplied
// buffer (e.g. a sharedbuf.MMap region) instead of allocating one of
// its own, writing the capacity header into it. The buffer must
// already be zeroed and exactly Length(headerSize, itemSize, capacity)
// words long; ErrCorrupt otherwise. This is how a map ends up backed
// by shared memory: wordbuf.New always allocates a private Go slice,
// so sharing requires handing in the buffer rather than the capacity.
func NewOverBuffer(buf wordbuf.Buffer, headerSize, itemSize, capacity uint32) (*Base, error) {
	want := Length(headerSize, itemSize, capacity)
	if buf.Len() != want {
		return nil, engerr.Wrap(engerr.ErrCorrupt, "buffer length %d, expected %d for capacity %d", buf.Len(), want, capacity)
	}
	buf.Set(HeaderCapacity, capacity)
	return &Base{Buf: buf, HeaderSize: headerSize, ItemSize: itemSize}, nil
}

// Open wraps an existing buffer, validating that its length exactly
// matches the length implied by its own stored capacity header word —
// spec §3 invariant 8 and §4.1's Corrupt error condition.
func Open(buf wordbuf.Buffer, headerSize, itemSize uint32) (*Base, error) {
	capacity := buf.Get(HeaderCapacity)
	want := Length(headerSize, itemSize, capacity)
	if buf.Len() != want {
		return nil, engerr.Wrap(engerr.ErrCorrupt, "buffer length %d, expected %d for capacity %d", buf.Len(), want, capacity)
	}
	return &Base{Buf: buf, HeaderSize: headerSize, ItemSize: itemSize}, nil
}

// Capacity returns the bucket-table width, i.e. the number of hash
// buckets this map currently has.
func (b *Base) Capacity() uint32 { return b.Buf.Get(HeaderCapacity) }

// Count returns the number of live (linked) items.
func (b *Base) Count() uint32 { return b.Buf.Get(HeaderCount) }

func (b *Base) setCount(v uint32) { b.Buf.Set(HeaderCount, v) }

// addressableLimit is the word offset where the item region begins.
func (b *Base) addressableLimit() uint32 { return b.HeaderSize + b.Capacity() }

// NextAddress returns the offset of the next unused item slot, as if
// `extra` additional items (e.g. tombstones) had already been counted.
// EdgeTypeMap calls NextAddress(deletes); NodeTypeMap calls
// NextAddress(0).
func (b *Base) NextAddress(extra uint32) uint32 {
	return b.addressableLimit() + (b.Count()+extra)*b.ItemSize
}

// Head returns the bucket-table entry for hash (0 == empty chain). hash
// must already be reduced modulo Capacity() by the caller.
func (b *Base) Head(hash uint32) uint32 { return b.Buf.Get(b.HeaderSize + hash) }

func (b *Base) setHead(hash, v uint32) { b.Buf.Set(b.HeaderSize+hash, v) }

// Next returns item's bucket-chain successor (0 == end of chain).
func (b *Base) Next(item uint32) uint32 { return b.Buf.Get(item + ItemNext) }

func (b *Base) setNext(item, v uint32) { b.Buf.Set(item+ItemNext, v) }

// TypeOf returns item's type tag; 0 means free/tombstoned.
func (b *Base) TypeOf(item uint32) uint32 { return b.Buf.Get(item + ItemType) }

func (b *Base) setType(item, v uint32) { b.Buf.Set(item+ItemType, v) }

// Link marks item live with the given type and appends it to the tail
// of hash's bucket chain, incrementing Count.
func (b *Base) Link(hash, item, typ uint32) {
	b.setType(item, typ)
	head := b.Head(hash)
	if head == 0 {
		b.setHead(hash, item)
	} else {
		tail := head
		for next := b.Next(tail); next != 0; next = b.Next(tail) {
			tail = next
		}
		b.setNext(tail, item)
	}
	b.setCount(b.Count() + 1)
}

// Unlink clears item's type, splices it out of hash's bucket chain by
// walking from the head to find its predecessor, clears its next
// pointer, and decrements Count. Reports whether item was found on the
// chain at all (callers that already hold item's address only use the
// bool as a sanity check).
func (b *Base) Unlink(hash, item uint32) bool {
	b.setType(item, 0)
	var prev uint32
	cur := b.Head(hash)
	for cur != 0 {
		next := b.Next(cur)
		if cur == item {
			if prev == 0 {
				b.setHead(hash, next)
			} else {
				b.setNext(prev, next)
			}
			b.setNext(cur, 0)
			b.setCount(b.Count() - 1)
			return true
		}
		prev = cur
		cur = next
	}
	return false
}

// ForEach scans the item region linearly from addressableLimit in
// itemSize strides, yielding the offset of every live (type != 0)
// record, stopping early once Count records have been yielded, the
// buffer ends, or yield returns false.
func (b *Base) ForEach(yield func(addr uint32) bool) {
	limit := b.addressableLimit()
	total := b.Buf.Len()
	want := b.Count()
	var seen uint32
	for addr := limit; seen < want && addr+b.ItemSize <= total; addr += b.ItemSize {
		if b.TypeOf(addr) != 0 {
			seen++
			if !yield(addr) {
				return
			}
		}
	}
}

// Load reports count/(Capacity*BucketSize) for a hypothetical count —
// callers probe "what would load be if I added N more items" before
// committing to a resize.
func (b *Base) Load(count uint32) float64 {
	return float64(count) / float64(b.Capacity()*BucketSize)
}

// CopyFrom copies source's live state into b, rebasing every bucket-table
// pointer and every item's `next` pointer by delta = b.Capacity() -
// source.Capacity() (the item region shifts right by delta words when
// the bucket table grows). The item region itself is copied
// position-for-position: index k in source lands at index k in b.
//
// CopyFrom only rebases the `next` field. Every other item word is
// copied unchanged, including NodeTypeMap's firstIn/firstOut/lastIn/
// lastOut, which hold offsets into the edge map's buffer and so are not
// moved by a node-map resize. EdgeTypeMap has no CopyFrom-based resize:
// edge-map rebuilds re-add every live edge instead. This mirrors spec
// §9's open question about set(...): only bucket-table and next
// pointers are shifted.
//
// Fails with ErrCapacityTooSmall if source.Capacity() > b.Capacity().
func (b *Base) CopyFrom(source *Base) error {
	if source.Capacity() > b.Capacity() {
		return engerr.Wrap(engerr.ErrCapacityTooSmall, "target capacity %d < source capacity %d", b.Capacity(), source.Capacity())
	}
	delta := b.Capacity() - source.Capacity()
	b.setCount(source.Count())

	for h := uint32(0); h < source.Capacity(); h++ {
		v := source.Head(h)
		if v != 0 {
			v += delta
		}
		b.setHead(h, v)
	}

	srcBase := source.addressableLimit()
	dstBase := b.addressableLimit()
	itemWords := source.Capacity() * BucketSize * source.ItemSize
	for k := uint32(0); k < itemWords; k += source.ItemSize {
		srcAddr := srcBase + k
		dstAddr := dstBase + k
		for w := uint32(0); w < source.ItemSize; w++ {
			b.Buf.Set(dstAddr+w, source.Buf.Get(srcAddr+w))
		}
		if nx := b.Buf.Get(dstAddr + ItemNext); nx != 0 {
			b.Buf.Set(dstAddr+ItemNext, nx+delta)
		}
	}

	return nil
}

// ItemRegionStart exposes addressableLimit, the word offset where the
// item region begins, to code that walks the item region itself.
func (b *Base) ItemRegionStart() uint32 { return b.addressableLimit() }

// Delta returns the word-offset shift a CopyFrom(source) applies to
// bucket-table and next pointers.
func Delta(dst, source *Base) uint32 { return dst.Capacity() - source.Capacity() }
