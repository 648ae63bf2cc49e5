package binio

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/opennbt/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unhex decodes an annotated hex string, stripping whitespace and
// comments (from "#" through end of line).
func unhex(t *testing.T, s string) []byte {
	s = regexp.MustCompile(`\s|(#[^\n]*\n?)`).ReplaceAllString(s, "")
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// scenarioHex is a document with a short and a list of strings under
// an empty-named root.
const scenarioHex = `
# root is TAG_Compound with the empty name
0a 00 00
# TAG_Short "hp" = 20
02 00 02 68 70 00 14
# TAG_List "tags" of TAG_String, count 2
09 00 04 74 61 67 73 08 00 00 00 02
# "a" and "b", headerless
00 01 61
00 01 62
# TAG_End closes the root
00
`

func scenarioTree(t *testing.T) *nbt.Compound {
	root := nbt.NewCompound()
	root.SetName("")
	require.NoError(t, root.Set("hp", nbt.NewShort(20)))
	tags := nbt.NewList(nbt.TypeString)
	require.NoError(t, tags.Append(nbt.NewString("a"), nbt.NewString("b")))
	require.NoError(t, root.Set("tags", tags))
	return root
}

func TestReadScenario(t *testing.T) {
	r := NewReader(bytes.NewReader(unhex(t, scenarioHex)))
	tag, err := r.Read()
	require.NoError(t, err)
	assert.True(t, nbt.Equal(scenarioTree(t), tag))
	// Wire order is preserved.
	assert.Equal(t, []string{"hp", "tags"}, tag.(*nbt.Compound).Keys())
	tag, err = r.Read()
	require.NoError(t, err)
	assert.Nil(t, tag)
}

func TestReadLittleEndian(t *testing.T) {
	input := unhex(t, `
0a 00 00
02 02 00 68 70 14 00
09 04 00 74 61 67 73 08 02 00 00 00
01 00 61
01 00 62
00
`)
	r := NewReaderWithOpts(bytes.NewReader(input), ReaderOpts{Order: binary.LittleEndian})
	tag, err := r.Read()
	require.NoError(t, err)
	assert.True(t, nbt.Equal(scenarioTree(t), tag))
}

func TestReadDocument(t *testing.T) {
	r := NewReader(bytes.NewReader(unhex(t, scenarioHex)))
	root, err := r.ReadDocument()
	require.NoError(t, err)
	assert.True(t, root.Named())
	assert.Equal(t, "", root.Name())
	assert.Equal(t, 2, root.Len())
}

func TestReadDocumentRejectsNonCompoundRoot(t *testing.T) {
	// A well-formed list at top level is still not a document.
	input := unhex(t, "09 00 00 08 00 00 00 00")
	_, err := NewReader(bytes.NewReader(input)).ReadDocument()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
	assert.ErrorContains(t, err, "not a valid nbt document")

	// The same bytes are fine as a plain tag stream.
	tag, err := NewReader(bytes.NewReader(input)).Read()
	require.NoError(t, err)
	assert.Equal(t, nbt.TypeList, tag.Type())
}

func TestReadDocumentEmptyInput(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil)).ReadDocument()
	assert.ErrorIs(t, err, nbt.ErrTruncated)
}

func TestReadEmptyCompound(t *testing.T) {
	r := NewReader(bytes.NewReader(unhex(t, "0a 00 00 00")))
	root, err := r.ReadDocument()
	require.NoError(t, err)
	assert.Equal(t, 0, root.Len())
}

func TestReadEmptyList(t *testing.T) {
	// The canonical empty list has element type TAG_End and count 0.
	r := NewReader(bytes.NewReader(unhex(t, "0a 00 00  09 00 01 6c 00 00 00 00 00  00")))
	root, err := r.ReadDocument()
	require.NoError(t, err)
	tag, ok := root.Lookup("l")
	require.True(t, ok)
	list := tag.(*nbt.List)
	assert.Equal(t, nbt.TypeEnd, list.Elem())
	assert.Equal(t, 0, list.Len())
}

func TestReadNonemptyEndListIsBadFormat(t *testing.T) {
	input := unhex(t, "0a 00 00  09 00 01 6c 00 00 00 00 01  00")
	_, err := NewReader(bytes.NewReader(input)).Read()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
}

func TestReadUnknownDiscriminant(t *testing.T) {
	_, err := NewReader(bytes.NewReader(unhex(t, "0c 00 00"))).Read()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)

	// Unknown discriminant of a compound child.
	_, err = NewReader(bytes.NewReader(unhex(t, "0a 00 00 0c 00 01 78 00"))).Read()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
}

func TestReadEndAtTopLevel(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0x00})).Read()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
}

func TestReadEmptyStream(t *testing.T) {
	tag, err := NewReader(bytes.NewReader(nil)).Read()
	require.NoError(t, err)
	assert.Nil(t, tag)
}

func TestReadTruncated(t *testing.T) {
	full := unhex(t, scenarioHex)
	// Every proper prefix must fail with a truncation, never hang or
	// misparse.  Cutting at 0 is a clean end of stream instead.
	for cut := 1; cut < len(full); cut++ {
		_, err := NewReader(bytes.NewReader(full[:cut])).Read()
		assert.ErrorIsf(t, err, nbt.ErrTruncated, "cut %d", cut)
	}
}

func TestReadErrorContext(t *testing.T) {
	// The stream ends halfway into the value of "hp".
	_, err := NewReader(bytes.NewReader(unhex(t, "0a 00 00 02 00 02 68 70 00"))).Read()
	require.Error(t, err)
	var decodeErr *Error
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "hp", decodeErr.Path.String())
	assert.Equal(t, int64(9), decodeErr.Offset)
	assert.ErrorIs(t, decodeErr, nbt.ErrTruncated)

	// The stream ends inside the second list element.
	full := unhex(t, scenarioHex)
	_, err = NewReader(bytes.NewReader(full[:27])).Read()
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "tags[1]", decodeErr.Path.String())
	assert.Equal(t, int64(27), decodeErr.Offset)
}

func TestReadNegativeCount(t *testing.T) {
	_, err := NewReader(bytes.NewReader(unhex(t, "07 00 01 62 ff ff ff ff"))).Read()
	assert.ErrorIs(t, err, nbt.ErrTruncated)
	assert.ErrorContains(t, err, "negative length")
}

func TestReadMaxBytes(t *testing.T) {
	opts := ReaderOpts{MaxBytes: 16}
	// A byte array claiming 256 bytes.
	input := unhex(t, "07 00 01 62 00 00 01 00")
	_, err := NewReaderWithOpts(bytes.NewReader(input), opts).Read()
	assert.ErrorIs(t, err, nbt.ErrTruncated)
	assert.ErrorContains(t, err, "exceeds limit")

	// Five ints are 20 bytes, over the same limit.
	input = unhex(t, "0b 00 01 69 00 00 00 05")
	_, err = NewReaderWithOpts(bytes.NewReader(input), opts).Read()
	assert.ErrorIs(t, err, nbt.ErrTruncated)

	// A negative setting disables the cap; the claim then fails
	// against the actual stream instead.
	input = unhex(t, "07 00 01 62 00 00 01 00 61 61")
	_, err = NewReaderWithOpts(bytes.NewReader(input), ReaderOpts{MaxBytes: -1}).Read()
	assert.ErrorIs(t, err, nbt.ErrTruncated)
	assert.NotContains(t, err.Error(), "exceeds limit")
}

func TestReadMaxDepth(t *testing.T) {
	var input []byte
	input = append(input, unhex(t, "0a 00 00")...)
	for i := 0; i < 4; i++ {
		input = append(input, unhex(t, "0a 00 01 63")...)
	}
	_, err := NewReaderWithOpts(bytes.NewReader(input), ReaderOpts{MaxDepth: 3}).Read()
	assert.ErrorIs(t, err, nbt.ErrBadFormat)
	assert.ErrorContains(t, err, "nesting deeper than 3")

	// The same input parses with a roomier bound and fails only for
	// its missing TAG_End terminators.
	_, err = NewReaderWithOpts(bytes.NewReader(input), ReaderOpts{MaxDepth: 8}).Read()
	assert.ErrorIs(t, err, nbt.ErrTruncated)
}

func TestReadDuplicateKeysKeepLast(t *testing.T) {
	input := unhex(t, "0a 00 00  01 00 01 78 01  01 00 01 78 02  00")
	root, err := NewReader(bytes.NewReader(input)).ReadDocument()
	require.NoError(t, err)
	assert.Equal(t, 1, root.Len())
	tag, ok := root.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int8(2), tag.(*nbt.Byte).Value)
}

func TestReadTagStream(t *testing.T) {
	input := unhex(t, "02 00 01 61 00 01  02 00 01 62 00 02")
	r := NewReader(bytes.NewReader(input))
	tag, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "a", tag.Name())
	assert.Equal(t, int16(1), tag.(*nbt.Short).Value)
	tag, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, "b", tag.Name())
	tag, err = r.Read()
	require.NoError(t, err)
	assert.Nil(t, tag)
}
