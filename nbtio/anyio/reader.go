package anyio

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// RFC 1952, Section 2.3.1
const (
	gzipID1 = 0x1f
	gzipID2 = 0x8b
)

// LZ4 frame magic 0x184d2204, stored little-endian.
var lz4Magic = [4]byte{0x04, 0x22, 0x4d, 0x18}

// Uncompress sniffs the first bytes of r for a known compression
// magic and, when one matches, returns a decompressing reader along
// with the Compression it detected.  Plain streams pass through
// unchanged.  None of the magics collide with a tag discriminant, so
// a matching magic that fails to decode is reported as an error
// rather than treated as NBT.
func Uncompress(r io.Reader) (io.Reader, Compression, error) {
	track := NewTrack(NewRecorder(r))
	var magic [4]byte
	n, _ := io.ReadFull(track, magic[:])
	track.Reset()
	switch {
	case n >= 2 && magic[0] == gzipID1 && magic[1] == gzipID2:
		zr, err := gzip.NewReader(track.Reader())
		if err != nil {
			return nil, Gzip, fmt.Errorf("gzip: %w", err)
		}
		return zr, Gzip, nil
	case n >= 2 && zlibMagic(magic[0], magic[1]):
		zr, err := zlib.NewReader(track.Reader())
		if err != nil {
			return nil, Zlib, fmt.Errorf("zlib: %w", err)
		}
		return zr, Zlib, nil
	case n >= 4 && magic == lz4Magic:
		return lz4.NewReader(track.Reader()), LZ4, nil
	}
	return track.Reader(), None, nil
}

// RFC 1950: the CMF/FLG pair is a multiple of 31.  CMF is pinned to
// 0x78 (deflate, 32 KiB window), which is what practical encoders
// emit; 0x08 would also be valid zlib but collides with the
// TAG_String discriminant.
func zlibMagic(cmf, flg byte) bool {
	return cmf == 0x78 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
