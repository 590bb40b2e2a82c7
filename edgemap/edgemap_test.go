package edgemap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/wordgraph/internal/engerr"
	"github.com/lvlath-labs/wordgraph/internal/wordbuf"
	"github.com/lvlath-labs/wordgraph/sharedmap"
)

func TestAddAndAddressOf(t *testing.T) {
	m, err := New(wordbuf.Width32, 16)
	require.NoError(t, err)

	hash := m.Hash(1, 2, 5)
	_, ok := m.AddressOf(hash, 1, 2, 5)
	require.False(t, ok)

	addr := m.Add(hash, 1, 2, 5)
	got, ok := m.AddressOf(hash, 1, 2, 5)
	require.True(t, ok)
	require.Equal(t, addr, got)
	require.Equal(t, uint32(1), m.From(addr))
	require.Equal(t, uint32(2), m.To(addr))

	_, ok = m.AddressOf(hash, 1, 3, 5)
	require.False(t, ok, "a different `to` must not match")
}

func TestDeleteTombstonesAndNextAddressAccountsForIt(t *testing.T) {
	m, err := New(wordbuf.Width32, 16)
	require.NoError(t, err)
	hash := m.Hash(1, 2, 5)
	addr := m.Add(hash, 1, 2, 5)

	before := m.NextAddress()
	m.Unlink(hash, addr)
	m.Delete(addr)
	require.Equal(t, uint32(1), m.Deletes())
	require.Equal(t, uint32(0), m.From(addr))

	after := m.NextAddress()
	require.Equal(t, before, after, "a tombstone still occupies its slot")
}

func TestLinkInOutAndUnlink(t *testing.T) {
	m, err := New(wordbuf.Width32, 16)
	require.NoError(t, err)
	e1 := m.Add(m.Hash(1, 2, 1), 1, 2, 1)
	e2 := m.Add(m.Hash(1, 3, 1), 1, 3, 1)

	m.LinkOut(e1, e2)
	require.Equal(t, e2, m.NextOut(e1))
	require.Equal(t, e1, m.PrevOut(e2))

	m.UnlinkOut(e2)
	require.Equal(t, uint32(0), m.NextOut(e1), "splicing e2 out must repair e1's successor pointer")
	require.Equal(t, uint32(0), m.PrevOut(e2))
}

func TestOpenRejectsCorruptBuffer(t *testing.T) {
	m, err := New(wordbuf.Width32, 16)
	require.NoError(t, err)
	raw := m.Buf.Bytes()
	truncated, err := wordbuf.Wrap(wordbuf.Width32, raw[:len(raw)-4])
	require.NoError(t, err)

	_, err = Open(truncated)
	require.Error(t, err)
}

func TestMaxCapacityRespectsWordWidth(t *testing.T) {
	require.LessOrEqual(t, MaxCapacity(wordbuf.Width16), wordbuf.Width16.Max())
}

func TestNewOverBufferBehavesLikeNew(t *testing.T) {
	buf, err := wordbuf.New(wordbuf.Width32, sharedmap.Length(HeaderSize, ItemSize, 16))
	require.NoError(t, err)

	m, err := NewOverBuffer(wordbuf.Width32, buf, 16)
	require.NoError(t, err)
	require.Equal(t, uint32(16), m.Capacity())

	hash := m.Hash(1, 2, 5)
	addr := m.Add(hash, 1, 2, 5)
	got, ok := m.AddressOf(hash, 1, 2, 5)
	require.True(t, ok)
	require.Equal(t, addr, got)
}

func TestNewOverBufferRejectsWrongLength(t *testing.T) {
	buf, err := wordbuf.New(wordbuf.Width32, sharedmap.Length(HeaderSize, ItemSize, 16)-1)
	require.NoError(t, err)

	_, err = NewOverBuffer(wordbuf.Width32, buf, 16)
	require.ErrorIs(t, err, engerr.ErrCorrupt)
}
