package binio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScenario(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{})
	require.NoError(t, w.Write(scenarioTree(t)))
	require.NoError(t, w.Close())
	assert.Equal(t, unhex(t, scenarioHex), buf.Bytes())
}

func TestWriteLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{Order: binary.LittleEndian})
	require.NoError(t, w.Write(scenarioTree(t)))
	r := NewReaderWithOpts(&buf, ReaderOpts{Order: binary.LittleEndian})
	tag, err := r.Read()
	require.NoError(t, err)
	assert.True(t, nbt.Equal(scenarioTree(t), tag))
}

func TestWriteUnnamedTopLevel(t *testing.T) {
	w := NewWriter(nbtio.NopCloser(&bytes.Buffer{}), WriterOpts{})
	err := w.Write(nbt.NewByte(1))
	assert.ErrorIs(t, err, nbt.ErrUnnamedTag)
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
}

func TestWriteNil(t *testing.T) {
	w := NewWriter(nbtio.NopCloser(&bytes.Buffer{}), WriterOpts{})
	assert.ErrorIs(t, w.Write(nil), nbt.ErrBadFormat)
}

func TestWriteListDropsElementNames(t *testing.T) {
	l := nbt.NewList(nbt.TypeByte)
	ghost := nbt.NewByte(7)
	ghost.SetName("ghost")
	require.NoError(t, l.Append(ghost))
	l.SetName("l")

	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{})
	require.NoError(t, w.Write(l))
	assert.Equal(t, unhex(t, "09 00 01 6c 01 00 00 00 01 07"), buf.Bytes())

	tag, err := NewReader(&buf).Read()
	require.NoError(t, err)
	elem := tag.(*nbt.List).At(0)
	assert.False(t, elem.Named())
	assert.Equal(t, int8(7), elem.(*nbt.Byte).Value)
}

func TestWriteEmptyListKeepsElemType(t *testing.T) {
	l := nbt.NewList(nbt.TypeString)
	l.SetName("l")
	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{})
	require.NoError(t, w.Write(l))
	assert.Equal(t, unhex(t, "09 00 01 6c 08 00 00 00 00"), buf.Bytes())

	tag, err := NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, nbt.TypeString, tag.(*nbt.List).Elem())
}

func TestWriteCyclicTree(t *testing.T) {
	l := nbt.NewList(nbt.TypeList)
	l.SetName("cycle")
	require.NoError(t, l.Append(l))
	w := NewWriter(nbtio.NopCloser(&bytes.Buffer{}), WriterOpts{})
	assert.ErrorIs(t, w.Write(l), nbt.ErrBadFormat)
}

func TestWriteStringTooLong(t *testing.T) {
	s := nbt.NewString(string(make([]byte, math.MaxUint16+1)))
	s.SetName("s")
	w := NewWriter(nbtio.NopCloser(&bytes.Buffer{}), WriterOpts{})
	assert.ErrorIs(t, w.Write(s), nbt.ErrBadFormat)
}

func TestRoundTripAllTypes(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		root := nbt.NewCompound()
		root.SetName("everything")
		require.NoError(t, root.Set("byte", nbt.NewByte(math.MinInt8)))
		require.NoError(t, root.Set("short", nbt.NewShort(math.MaxInt16)))
		require.NoError(t, root.Set("int", nbt.NewInt(math.MinInt32)))
		require.NoError(t, root.Set("long", nbt.NewLong(math.MaxInt64)))
		require.NoError(t, root.Set("float", nbt.NewFloat(float32(math.NaN()))))
		require.NoError(t, root.Set("double", nbt.NewDouble(math.SmallestNonzeroFloat64)))
		require.NoError(t, root.Set("string", nbt.NewString("héllo\x00world")))
		require.NoError(t, root.Set("bytes", nbt.NewByteArray([]byte{0, 1, 255})))
		require.NoError(t, root.Set("ints", nbt.NewIntArray([]int32{-1, 0, math.MaxInt32})))
		doubles := nbt.NewList(nbt.TypeDouble)
		require.NoError(t, doubles.Append(nbt.NewDouble(1.5), nbt.NewDouble(-2.25)))
		require.NoError(t, root.Set("doubles", doubles))
		inner := nbt.NewCompound()
		require.NoError(t, inner.Set("empty", nbt.NewList(nbt.TypeEnd)))
		require.NoError(t, root.Set("inner", inner))

		var buf bytes.Buffer
		w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{Order: order})
		require.NoError(t, w.Write(root))
		tag, err := NewReaderWithOpts(&buf, ReaderOpts{Order: order}).Read()
		require.NoError(t, err)
		assert.True(t, nbt.Equal(root, tag))
	}
}

func TestWriterReaderAsStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf), WriterOpts{})
	a := nbt.NewInt(1)
	a.SetName("a")
	b := nbt.NewInt(2)
	b.SetName("b")
	require.NoError(t, w.Write(a))
	require.NoError(t, w.Write(b))

	var tags []nbt.Tag
	r := NewReader(&buf)
	for {
		tag, err := r.Read()
		require.NoError(t, err)
		if tag == nil {
			break
		}
		tags = append(tags, tag)
	}
	require.Len(t, tags, 2)
	assert.True(t, nbt.Equal(a, tags[0]))
	assert.True(t, nbt.Equal(b, tags[1]))
}
