package regionio

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ nbtio.Reader = (*Reader)(nil)

func chunkRoot(t *testing.T, x, z int) *nbt.Compound {
	t.Helper()
	level := nbt.NewCompound()
	require.NoError(t, level.Set("xPos", nbt.NewInt(int32(x))))
	require.NoError(t, level.Set("zPos", nbt.NewInt(int32(z))))
	root := nbt.NewCompound()
	root.SetName("")
	require.NoError(t, root.Set("Level", level))
	return root
}

func writeRegion(t *testing.T, scheme byte, coords [][2]int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriterWithOpts(nbtio.NopCloser(&buf), WriterOpts{Scheme: scheme})
	for _, c := range coords {
		require.NoError(t, w.WriteChunk(c[0], c[1], chunkRoot(t, c[0], c[1])))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRoundTripSchemes(t *testing.T) {
	coords := [][2]int{{0, 0}, {5, 7}, {31, 31}}
	for _, scheme := range []byte{SchemeGzip, SchemeZlib, SchemeNone, SchemeLZ4} {
		b := writeRegion(t, scheme, coords)
		// Everything is sector-aligned.
		assert.Zero(t, len(b)%SectorSize)
		r, err := NewReader(bytes.NewReader(b))
		require.NoError(t, err)
		for _, c := range coords {
			assert.True(t, r.Present(c[0], c[1]))
			root, err := r.ReadChunk(c[0], c[1])
			require.NoError(t, err)
			assert.True(t, nbt.Equal(chunkRoot(t, c[0], c[1]), root))
		}
		assert.False(t, r.Present(1, 0))
		root, err := r.ReadChunk(1, 0)
		require.NoError(t, err)
		assert.Nil(t, root)
	}
}

func TestSequentialReadOrder(t *testing.T) {
	// Staged out of order; Read returns index order.
	b := writeRegion(t, SchemeZlib, [][2]int{{31, 31}, {0, 1}, {5, 0}})
	r, err := NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	var got [][2]int
	for {
		tag, err := r.Read()
		require.NoError(t, err)
		if tag == nil {
			break
		}
		level, ok := tag.(*nbt.Compound).Lookup("Level")
		require.True(t, ok)
		x, _ := level.(*nbt.Compound).Lookup("xPos")
		z, _ := level.(*nbt.Compound).Lookup("zPos")
		got = append(got, [2]int{int(x.(*nbt.Int).Value), int(z.(*nbt.Int).Value)})
	}
	assert.Equal(t, [][2]int{{5, 0}, {0, 1}, {31, 31}}, got)
}

func TestReadAll(t *testing.T) {
	coords := [][2]int{{0, 0}, {1, 0}, {2, 2}, {31, 31}}
	b := writeRegion(t, SchemeZlib, coords)
	r, err := NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	chunks, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, len(coords))
	for i, c := range coords {
		assert.Equal(t, c[0], chunks[i].X)
		assert.Equal(t, c[1], chunks[i].Z)
		assert.False(t, chunks[i].Timestamp.IsZero())
		assert.True(t, nbt.Equal(chunkRoot(t, c[0], c[1]), chunks[i].Root))
	}
}

func TestReadAllCancel(t *testing.T) {
	b := writeRegion(t, SchemeZlib, [][2]int{{0, 0}})
	r, err := NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMultiSectorChunk(t *testing.T) {
	root := nbt.NewCompound()
	root.SetName("")
	require.NoError(t, root.Set("blocks", nbt.NewByteArray(make([]byte, 3*SectorSize))))
	var buf bytes.Buffer
	w := NewWriterWithOpts(nbtio.NopCloser(&buf), WriterOpts{Scheme: SchemeNone})
	require.NoError(t, w.WriteChunk(4, 4, root))
	require.NoError(t, w.Close())
	// Header plus four sectors of payload.
	assert.Equal(t, headerSize+4*SectorSize, buf.Len())
	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	got, err := r.ReadChunk(4, 4)
	require.NoError(t, err)
	assert.True(t, nbt.Equal(root, got))
}

func TestTimestamps(t *testing.T) {
	before := time.Now().Add(-time.Second)
	b := writeRegion(t, SchemeZlib, [][2]int{{3, 3}})
	r, err := NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	assert.False(t, r.Timestamp(3, 3).Before(before.Truncate(time.Second)))
	assert.True(t, r.Timestamp(0, 0).IsZero())
}

func TestWriterValidation(t *testing.T) {
	w := NewWriter(nbtio.NopCloser(&bytes.Buffer{}))
	assert.ErrorIs(t, w.WriteChunk(32, 0, chunkRoot(t, 0, 0)), nbt.ErrBadFormat)
	assert.ErrorIs(t, w.WriteChunk(0, -1, chunkRoot(t, 0, 0)), nbt.ErrBadFormat)
	assert.ErrorIs(t, w.WriteChunk(0, 0, nil), nbt.ErrBadFormat)
	unnamed := nbt.NewCompound()
	assert.ErrorIs(t, w.WriteChunk(0, 0, unnamed), nbt.ErrUnnamedTag)
	require.NoError(t, w.Flush())
	assert.Error(t, w.WriteChunk(0, 0, chunkRoot(t, 0, 0)))
	require.NoError(t, w.Flush())
}

func TestCorruptRegion(t *testing.T) {
	_, err := NewReader(bytes.NewReader(make([]byte, 100)))
	assert.ErrorIs(t, err, nbt.ErrTruncated)

	b := writeRegion(t, SchemeZlib, [][2]int{{0, 0}})
	// Unknown per-chunk compression scheme.
	bad := append([]byte(nil), b...)
	bad[headerSize+4] = 9
	r, err := NewReader(bytes.NewReader(bad))
	require.NoError(t, err)
	_, err = r.ReadChunk(0, 0)
	assert.ErrorIs(t, err, nbt.ErrBadFormat)

	// Declared length overflowing the allocated sectors.
	bad = append([]byte(nil), b...)
	bad[headerSize] = 0xff
	bad[headerSize+1] = 0xff
	bad[headerSize+2] = 0xff
	bad[headerSize+3] = 0xff
	r, err = NewReader(bytes.NewReader(bad))
	require.NoError(t, err)
	_, err = r.ReadChunk(0, 0)
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
}
