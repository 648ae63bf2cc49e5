package anyio

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/opennbt/nbt/nbtio"
	"github.com/pierrec/lz4/v4"
)

// Compression names a stream codec that may wrap binary NBT.
type Compression int

const (
	None Compression = iota
	Gzip
	Zlib
	LZ4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case LZ4:
		return "lz4"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

func LookupCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "lz4":
		return LZ4, nil
	}
	return None, fmt.Errorf("no such compression: %q", name)
}

// NewCompressor wraps w in the codec named by c.  Closing the
// returned WriteCloser flushes the codec but leaves w open.
func NewCompressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nbtio.NopCloser(w), nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("no such compression: %v", c)
}
