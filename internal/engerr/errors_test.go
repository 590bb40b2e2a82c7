package engerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesErrorsIs(t *testing.T) {
	err := Wrap(ErrCorrupt, "buffer length %d, expected %d", 3, 4)
	require.ErrorIs(t, err, ErrCorrupt)
	require.Contains(t, err.Error(), "buffer length 3, expected 4")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrCapacityOverflow, ErrInvalidEdgeType, ErrInvalidNodeID,
		ErrCorrupt, ErrInconsistent, ErrCapacityTooSmall,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.NotErrorIs(t, a, b)
		}
	}
}
