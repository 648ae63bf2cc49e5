package regionio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio/binio"
	"go.uber.org/multierr"
)

type WriterOpts struct {
	// Scheme is the per-chunk compression byte.  Zero selects
	// SchemeZlib, the container's conventional default.
	Scheme byte
}

type staged struct {
	data  []byte
	stamp uint32
}

// Writer stages chunks by coordinate and lays out the header tables
// and sector-padded payloads when flushed.  Nothing reaches the
// underlying writer until then.
type Writer struct {
	writer  io.WriteCloser
	scheme  byte
	chunks  map[int]staged
	flushed bool
}

func NewWriter(w io.WriteCloser) *Writer {
	return NewWriterWithOpts(w, WriterOpts{})
}

func NewWriterWithOpts(w io.WriteCloser, opts WriterOpts) *Writer {
	scheme := opts.Scheme
	if scheme == 0 {
		scheme = SchemeZlib
	}
	return &Writer{writer: w, scheme: scheme, chunks: make(map[int]staged)}
}

// WriteChunk encodes root as a big-endian document, compresses it,
// and stages it at (x, z), replacing any chunk staged there earlier.
// The root must be named; chunk documents conventionally carry the
// empty name.
func (w *Writer) WriteChunk(x, z int, root *nbt.Compound) error {
	i, err := index(x, z)
	if err != nil {
		return err
	}
	if w.flushed {
		return errors.New("regionio: writer already flushed")
	}
	if root == nil {
		return fmt.Errorf("regionio: chunk (%d,%d): nil root: %w", x, z, nbt.ErrBadFormat)
	}
	var buf bytes.Buffer
	zw, err := schemeWriter(w.scheme, &buf)
	if err != nil {
		return err
	}
	bw := binio.NewWriter(zw, binio.WriterOpts{Order: binary.BigEndian})
	err = bw.Write(root)
	if err = multierr.Append(err, bw.Close()); err != nil {
		return fmt.Errorf("regionio: chunk (%d,%d): %w", x, z, err)
	}
	w.chunks[i] = staged{data: buf.Bytes(), stamp: uint32(time.Now().Unix())}
	return nil
}

// Flush writes the header and every staged chunk.  Flushing twice is
// a no-op.
func (w *Writer) Flush() error {
	if w.flushed {
		return nil
	}
	w.flushed = true
	var offsets, stamps [entries]uint32
	var body bytes.Buffer
	sector := uint32(headerSize / SectorSize)
	for i := 0; i < entries; i++ {
		c, ok := w.chunks[i]
		if !ok {
			continue
		}
		n := len(c.data) + 1
		need := sectors(n + 4)
		if need > 0xff {
			return fmt.Errorf("regionio: chunk (%d,%d): %d bytes overflows the 255-sector limit: %w", i%Width, i/Width, n, nbt.ErrBadFormat)
		}
		if sector > 0xffffff {
			return fmt.Errorf("regionio: region overflows the 24-bit sector offset: %w", nbt.ErrBadFormat)
		}
		offsets[i] = sector<<8 | uint32(need)
		stamps[i] = c.stamp
		var head [4]byte
		binary.BigEndian.PutUint32(head[:], uint32(n))
		body.Write(head[:])
		body.WriteByte(w.scheme)
		body.Write(c.data)
		body.Write(make([]byte, need*SectorSize-(n+4)))
		sector += uint32(need)
	}
	header := make([]byte, headerSize)
	for i := 0; i < entries; i++ {
		binary.BigEndian.PutUint32(header[4*i:], offsets[i])
		binary.BigEndian.PutUint32(header[SectorSize+4*i:], stamps[i])
	}
	if _, err := w.writer.Write(header); err != nil {
		return err
	}
	_, err := w.writer.Write(body.Bytes())
	return err
}

// Close flushes staged chunks and closes the underlying writer.
func (w *Writer) Close() error {
	err := w.Flush()
	return multierr.Append(err, w.writer.Close())
}
