package wordbuf

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Width selects the fixed-width integer type backing a Buffer's words.
// The engine is parametric over word width: smaller widths shrink both
// the buffer footprint and the maximum addressable capacity.
type Width uint8

const (
	// Width8 stores each word in a single byte (max value 255).
	Width8 Width = iota
	// Width16 stores each word in two bytes (max value 65535).
	Width16
	// Width32 stores each word in four bytes (max value 4294967295).
	Width32
)

// ErrUnknownWidth is returned by New/Wrap for an unrecognized Width value.
var ErrUnknownWidth = errors.New("wordbuf: unknown word width")

// Size returns the number of bytes occupied by a single word at this width.
func (w Width) Size() int {
	switch w {
	case Width8:
		return 1
	case Width16:
		return 2
	default:
		return 4
	}
}

// Max returns the largest value representable by a single word at this
// width. Engines use this to cap MAX_CAPACITY proportionally to width.
func (w Width) Max() uint32 {
	switch w {
	case Width8:
		return 1<<8 - 1
	case Width16:
		return 1<<16 - 1
	default:
		return 1<<32 - 1
	}
}

func (w Width) valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// Buffer is a flat, word-addressed arena. Offsets are word indices, not
// byte indices; offset 0 is reserved by every caller as the null
// sentinel. A Buffer never interprets the meaning of a word — that is
// the job of sharedmap/nodemap/edgemap.
type Buffer interface {
	// Width reports the word width this buffer was constructed with.
	Width() Width
	// Len reports the buffer length in words.
	Len() uint32
	// Get reads the word at offset i. Panics if i is out of range, the
	// same way a slice index out of range panics — offsets are always
	// computed by trusted internal code, never derived from unchecked
	// external input.
	Get(i uint32) uint32
	// Set writes v (truncated to the buffer's word width) at offset i.
	Set(i uint32, v uint32)
	// Bytes returns the raw backing bytes. Mutating the returned slice
	// mutates the Buffer; this is the aliasing behavior spec.md §5
	// requires for shared-buffer handoff.
	Bytes() []byte
}

// New allocates a fresh, zeroed Buffer of the given length in words.
func New(width Width, words uint32) (Buffer, error) {
	if !width.valid() {
		return nil, errors.WithStack(ErrUnknownWidth)
	}
	return &sliceBuffer{width: width, data: make([]byte, uint64(words)*uint64(width.Size()))}, nil
}

// Wrap takes ownership of raw, aliasing it directly. len(raw) must be an
// exact multiple of width.Size(); callers that need byte-length
// validation against a computed word count should compare Len() against
// their own expectation (see sharedmap.Base's Corrupt check).
func Wrap(width Width, raw []byte) (Buffer, error) {
	if !width.valid() {
		return nil, errors.WithStack(ErrUnknownWidth)
	}
	sz := width.Size()
	if len(raw)%sz != 0 {
		return nil, errors.Errorf("wordbuf: buffer length %d is not a multiple of word size %d", len(raw), sz)
	}
	return &sliceBuffer{width: width, data: raw}, nil
}

type sliceBuffer struct {
	width Width
	data  []byte
}

func (b *sliceBuffer) Width() Width { return b.width }

func (b *sliceBuffer) Len() uint32 { return uint32(len(b.data) / b.width.Size()) }

func (b *sliceBuffer) Bytes() []byte { return b.data }

func (b *sliceBuffer) Get(i uint32) uint32 {
	switch b.width {
	case Width8:
		return uint32(b.data[i])
	case Width16:
		return uint32(binary.LittleEndian.Uint16(b.data[i*2:]))
	default:
		return binary.LittleEndian.Uint32(b.data[i*4:])
	}
}

func (b *sliceBuffer) Set(i uint32, v uint32) {
	switch b.width {
	case Width8:
		b.data[i] = byte(v)
	case Width16:
		binary.LittleEndian.PutUint16(b.data[i*2:], uint16(v))
	default:
		binary.LittleEndian.PutUint32(b.data[i*4:], v)
	}
}
