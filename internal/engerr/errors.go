// Package engerr defines the fatal error kinds of spec §7's error table
// and wraps them with github.com/pkg/errors so a caller hitting a fatal
// invariant violation gets a stack trace pointing at the offending
// engine call, not just a flat sentinel.
//
// "Not an error" outcomes (Duplicate addEdge, NotFound removeEdge) are
// not represented here — they are plain bool returns, per spec §7.
package engerr

import "github.com/pkg/errors"

// Sentinel kinds. Compare with errors.Is; the wrapped error returned by
// Wrap below always satisfies errors.Is(err, ErrXxx).
var (
	// ErrCapacityOverflow: growth would exceed MAX_CAPACITY.
	ErrCapacityOverflow = errors.New("engine: capacity overflow")
	// ErrInvalidEdgeType: addEdge called with type <= 0.
	ErrInvalidEdgeType = errors.New("engine: invalid edge type")
	// ErrInvalidNodeID: NodeTypeMap.Add called with id outside [0, nextId).
	ErrInvalidNodeID = errors.New("engine: invalid node id")
	// ErrCorrupt: deserialized buffer length disagrees with its header.
	ErrCorrupt = errors.New("engine: corrupt buffer")
	// ErrInconsistent: removal could not find a node record the edge implies.
	ErrInconsistent = errors.New("engine: inconsistent map state")
	// ErrCapacityTooSmall: set(source) where target capacity < source capacity.
	ErrCapacityTooSmall = errors.New("engine: target capacity too small")
)

// Wrap annotates sentinel with a contextual message and a stack trace
// captured at the call site, preserving errors.Is(result, sentinel).
func Wrap(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
