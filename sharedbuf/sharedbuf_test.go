package sharedbuf

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
)

var errTestReader = errors.New("sharedbuf_test: reader failed")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMMapRoundTrip(t *testing.T) {
	region, err := MMap(wordbuf.Width32, 4)
	require.NoError(t, err)
	defer region.Close()

	buf, err := region.Buffer()
	require.NoError(t, err)
	buf.Set(0, 42)
	require.Equal(t, uint32(42), buf.Get(0))
}

func TestMMapCloseIsIdempotent(t *testing.T) {
	region, err := MMap(wordbuf.Width8, 1)
	require.NoError(t, err)
	require.NoError(t, region.Close())
	require.NoError(t, region.Close())
}

func TestBroadcastFansOutToEveryReader(t *testing.T) {
	snapshot := []byte{1, 2, 3}
	var seen int32

	err := Broadcast(context.Background(), snapshot, 5, func(_ context.Context, got []byte, _ int) error {
		require.Equal(t, snapshot, got)
		atomic.AddInt32(&seen, 1)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, atomic.LoadInt32(&seen))
}

func TestBroadcastReturnsFirstReaderError(t *testing.T) {
	boom := errTestReader
	err := Broadcast(context.Background(), nil, 3, func(_ context.Context, _ []byte, i int) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}
