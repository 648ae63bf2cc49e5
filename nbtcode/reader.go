package nbtcode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/opennbt/nbt"
)

// Reader decodes primitive encodings from a stream in a fixed byte
// order, counting the bytes it consumes.
type Reader struct {
	r      io.Reader
	order  binary.ByteOrder
	offset int64
	buf    [8]byte
}

func NewReader(r io.Reader, order binary.ByteOrder) *Reader {
	return &Reader{r: r, order: order}
}

func (r *Reader) Order() binary.ByteOrder { return r.order }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.offset }

// ReadByte returns the next byte.  At a clean end of stream the error
// is io.EOF; every other read method is meant for mid-structure fields
// and reports any end of stream as a truncation.
func (r *Reader) ReadByte() (byte, error) {
	n, err := io.ReadFull(r.r, r.buf[:1])
	r.offset += int64(n)
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, truncated(err)
	}
	return r.buf[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, truncated(err)
	}
	return int8(b), nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return int64(r.order.Uint64(b)), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(r.order.Uint32(b)), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(b)), nil
}

// ReadString reads a 16-bit unsigned length prefix and that many raw
// bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	nn, err := io.ReadFull(r.r, b)
	r.offset += int64(nn)
	if err != nil {
		return "", truncated(err)
	}
	return string(b), nil
}

// ReadBytes returns the next n bytes.  The buffer grows with the bytes
// actually read so a corrupt count cannot balloon memory before the
// stream runs out.
func (r *Reader) ReadBytes(n int64) ([]byte, error) {
	var buf bytes.Buffer
	nn, err := io.CopyN(&buf, r.r, n)
	r.offset += nn
	if err != nil {
		return nil, truncated(err)
	}
	return buf.Bytes(), nil
}

func (r *Reader) read(n int) ([]byte, error) {
	b := r.buf[:n]
	nn, err := io.ReadFull(r.r, b)
	r.offset += int64(nn)
	if err != nil {
		return nil, truncated(err)
	}
	return b, nil
}

// truncated maps any flavor of end-of-stream from a partial read into
// the taxonomy: the input promised more bytes than it carried.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("nbtcode: unexpected end of input: %w", nbt.ErrTruncated)
	}
	return err
}
