package sharedbuf

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
)

// ErrUnsupported names the case of a platform without an anonymous
// shared-memory mapping facility (non-Unix). MMap does not return it:
// this file calls golang.org/x/sys/unix directly and has no non-Unix
// variant.
var ErrUnsupported = errors.New("sharedbuf: mmap backing unsupported on this platform")

// mmapRegion owns an anonymous, shared (MAP_SHARED) memory mapping and
// exposes it as a wordbuf.Buffer. Because it is MAP_SHARED rather than
// MAP_PRIVATE, a fork()'d child process (or, via /proc/pid/mem-style
// tooling, another unrelated process) observes the same bytes without
// a copy — the "handed across process boundaries by reference" goal.
type mmapRegion struct {
	width wordbuf.Width
	data  []byte
}

// MMap allocates a fresh, zeroed word buffer backed by an anonymous
// MAP_SHARED mapping of the given length in words. Close must be
// called to release the mapping; failing to call it leaks virtual
// address space until process exit (the pages themselves are
// reclaimed by the kernel, as with any mmap).
func MMap(width wordbuf.Width, words uint32) (*mmapRegion, error) {
	size := int(words) * width.Size()
	if size == 0 {
		size = width.Size()
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, errors.Wrap(err, "sharedbuf: mmap")
	}
	r := &mmapRegion{width: width, data: data}
	runtime.SetFinalizer(r, func(r *mmapRegion) { _ = r.Close() })
	return r, nil
}

// Close unmaps the region. Safe to call more than once.
func (r *mmapRegion) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}

// Buffer wraps the mapping as a wordbuf.Buffer via the same
// little-endian encoding wordbuf.Wrap uses for a plain []byte.
func (r *mmapRegion) Buffer() (wordbuf.Buffer, error) {
	return wordbuf.Wrap(r.width, r.data)
}
