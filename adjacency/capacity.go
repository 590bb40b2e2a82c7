package adjacency

import (
	"math"

	"github.com/pingcap/failpoint"

	"github.com/lvlath-labs/wordgraph/edgemap"
	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/nodemap"
)

// Capacity policy constants, spec §4.4.
const (
	LoadFactor    = 0.7
	UnloadFactor  = 0.3
	MaxGrowFactor = 8.0
	MinGrowFactor = 2.0
	ShrinkFactor  = 0.5
)

func roundU32(f float64) uint32 {
	if f < 0 {
		return 0
	}
	return uint32(math.Round(f))
}

// nextNodeCapacity computes resizeNodes' target capacity: a flat
// MIN_GROW_FACTOR multiply, raised to MinCapacity if smaller; fails
// with ErrCapacityOverflow above MaxCapacity.
func nextNodeCapacity(width wordbuf.Width, capacity uint32) (uint32, error) {
	newCap := roundU32(float64(capacity) * MinGrowFactor)
	if newCap < nodemap.MinCapacity {
		newCap = nodemap.MinCapacity
	}
	if max := nodemap.MaxCapacity(width); newCap > max {
		return 0, engerr.Wrap(engerr.ErrCapacityOverflow, "node capacity %d exceeds max %d", newCap, max)
	}
	return newCap, nil
}

// nextEdgeCapacity is getNextEdgeCapacity(capacity, count, load) from
// spec §4.4: growth above LoadFactor interpolates the grow factor down
// from MaxGrowFactor to MinGrowFactor as capacity approaches
// edgemap.PeakCapacity; below UnloadFactor it shrinks by ShrinkFactor;
// in between capacity is unchanged.
func nextEdgeCapacity(width wordbuf.Width, capacity uint32, load float64) (uint32, error) {
	var newCap uint32
	switch {
	case load > LoadFactor:
		pct := float64(capacity) / float64(edgemap.PeakCapacity)
		if pct > 1 {
			pct = 1
		} else if pct < 0 {
			pct = 0
		}
		growFactor := MaxGrowFactor + (MinGrowFactor-MaxGrowFactor)*pct
		newCap = roundU32(float64(capacity) * growFactor)
	case load < UnloadFactor:
		newCap = roundU32(float64(capacity) * ShrinkFactor)
	default:
		newCap = capacity
	}

	// Fault-injection point for deterministic overflow-path testing
	// (spec §8 boundary behavior: resize overflow must fail cleanly).
	failpoint.Inject("forceCapacityOverflow", func(_ failpoint.Value) {
		newCap = math.MaxUint32
	})

	if newCap < edgemap.MinCapacity {
		newCap = edgemap.MinCapacity
	}
	if max := edgemap.MaxCapacity(width); newCap > max {
		return 0, engerr.Wrap(engerr.ErrCapacityOverflow, "edge capacity %d exceeds max %d", newCap, max)
	}
	return newCap, nil
}
