package jsonio

import (
	"bytes"
	"math"
	"testing"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOne(t *testing.T, tag nbt.Tag) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(nbtio.NopCloser(&buf))
	require.NoError(t, w.Write(tag))
	require.NoError(t, w.Close())
	return buf.String()
}

func TestWriteTree(t *testing.T) {
	list := nbt.NewList(nbt.TypeString)
	require.NoError(t, list.Append(nbt.NewString("a"), nbt.NewString("b")))
	root := nbt.NewCompound()
	require.NoError(t, root.Set("hp", nbt.NewShort(20)))
	require.NoError(t, root.Set("tags", list))
	assert.Equal(t, `{"hp":20,"tags":["a","b"]}`+"\n", writeOne(t, root))
}

func TestWriteKeepsInsertionOrder(t *testing.T) {
	root := nbt.NewCompound()
	require.NoError(t, root.Set("z", nbt.NewInt(1)))
	require.NoError(t, root.Set("a", nbt.NewInt(2)))
	require.NoError(t, root.Set("m", nbt.NewInt(3)))
	assert.Equal(t, `{"z":1,"a":2,"m":3}`+"\n", writeOne(t, root))
}

func TestWriteNonFinite(t *testing.T) {
	root := nbt.NewCompound()
	require.NoError(t, root.Set("nan", nbt.NewDouble(math.NaN())))
	require.NoError(t, root.Set("inf", nbt.NewFloat(float32(math.Inf(1)))))
	require.NoError(t, root.Set("ninf", nbt.NewDouble(math.Inf(-1))))
	assert.Equal(t, `{"nan":"NaN","inf":"+Inf","ninf":"-Inf"}`+"\n", writeOne(t, root))
}

func TestWriteArrays(t *testing.T) {
	root := nbt.NewCompound()
	require.NoError(t, root.Set("b", nbt.NewByteArray([]byte{0x01, 0xff})))
	require.NoError(t, root.Set("i", nbt.NewIntArray([]int32{-1, 7})))
	assert.Equal(t, `{"b":[1,-1],"i":[-1,7]}`+"\n", writeOne(t, root))
}

func TestWriteScalarDocuments(t *testing.T) {
	assert.Equal(t, "-1\n", writeOne(t, nbt.NewByte(-1)))
	assert.Equal(t, "0.25\n", writeOne(t, nbt.NewFloat(0.25)))
	assert.Equal(t, `"hi"`+"\n", writeOne(t, nbt.NewString("hi")))
}
