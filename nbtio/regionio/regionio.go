// Package regionio reads and writes region files, the standard
// multi-document NBT container: a 32x32 grid of chunks behind an
// 8 KiB header of big-endian sector offsets and modification stamps,
// with chunk payloads padded out to 4 KiB sectors.  Each payload is a
// 4-byte big-endian length, a 1-byte compression scheme, and one
// compressed NBT document.  Chunk documents are always big-endian no
// matter what byte order the surrounding tooling is configured for.
package regionio

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio"
	"github.com/pierrec/lz4/v4"
)

const (
	// Width is the chunk grid dimension; region coordinates run
	// 0..Width-1 on both axes.
	Width = 32

	// SectorSize is the allocation unit for chunk payloads and the
	// two header tables.
	SectorSize = 4096

	entries    = Width * Width
	headerSize = 2 * SectorSize
)

// Per-chunk compression scheme bytes.
const (
	SchemeGzip = 1
	SchemeZlib = 2
	SchemeNone = 3
	SchemeLZ4  = 4
)

func index(x, z int) (int, error) {
	if x < 0 || x >= Width || z < 0 || z >= Width {
		return 0, fmt.Errorf("regionio: chunk (%d,%d) out of range: %w", x, z, nbt.ErrBadFormat)
	}
	return x + z*Width, nil
}

func schemeReader(scheme byte, r io.Reader) (io.Reader, error) {
	switch scheme {
	case SchemeGzip:
		return gzip.NewReader(r)
	case SchemeZlib:
		return zlib.NewReader(r)
	case SchemeNone:
		return r, nil
	case SchemeLZ4:
		return lz4.NewReader(r), nil
	}
	return nil, fmt.Errorf("regionio: unknown compression scheme %d: %w", scheme, nbt.ErrBadFormat)
}

func schemeWriter(scheme byte, w io.Writer) (io.WriteCloser, error) {
	switch scheme {
	case SchemeGzip:
		return gzip.NewWriter(w), nil
	case SchemeZlib:
		return zlib.NewWriter(w), nil
	case SchemeNone:
		return nbtio.NopCloser(w), nil
	case SchemeLZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("regionio: unknown compression scheme %d: %w", scheme, nbt.ErrBadFormat)
}

// sectors returns the sector count covering n bytes.
func sectors(n int) int {
	return (n + SectorSize - 1) / SectorSize
}
