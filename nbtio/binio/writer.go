package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtcode"
)

type WriterOpts struct {
	// Order is the byte order to emit.  Nil means binary.BigEndian,
	// the NBT default.
	Order binary.ByteOrder
}

type Writer struct {
	writer io.WriteCloser
	order  binary.ByteOrder
	buffer []byte
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	order := opts.Order
	if order == nil {
		order = binary.BigEndian
	}
	return &Writer{
		writer: w,
		order:  order,
		buffer: make([]byte, 0, 128),
	}
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// Write encodes one tag with its header.  The tag must be named: the
// wire cannot mark a name as absent outside a list body, so an unnamed
// tag here is rejected with ErrUnnamedTag rather than guessed at.
func (w *Writer) Write(tag nbt.Tag) error {
	b, err := w.append(w.buffer[:0], tag, 0)
	if err != nil {
		return err
	}
	w.buffer = b
	_, err = w.writer.Write(b)
	return err
}

// append encodes the header (discriminant and name) of tag followed by
// its value.
func (w *Writer) append(dst []byte, tag nbt.Tag, depth int) ([]byte, error) {
	if tag == nil {
		return nil, fmt.Errorf("binio: cannot encode nil tag: %w", nbt.ErrBadFormat)
	}
	if !tag.Named() {
		return nil, fmt.Errorf("binio: %s: %w", tag.Type(), nbt.ErrUnnamedTag)
	}
	dst = nbtcode.AppendUint8(dst, byte(tag.Type()))
	dst, err := nbtcode.AppendString(dst, w.order, tag.Name())
	if err != nil {
		return nil, err
	}
	return w.appendValue(dst, tag, depth)
}

func (w *Writer) appendValue(dst []byte, tag nbt.Tag, depth int) ([]byte, error) {
	if depth > DefaultMaxDepth {
		// A tree this deep is either cyclic or built to break the
		// decoder on the other side.
		return nil, fmt.Errorf("binio: nesting deeper than %d levels: %w", DefaultMaxDepth, nbt.ErrBadFormat)
	}
	switch tag := tag.(type) {
	case *nbt.Byte:
		return nbtcode.AppendInt8(dst, tag.Value), nil
	case *nbt.Short:
		return nbtcode.AppendInt16(dst, w.order, tag.Value), nil
	case *nbt.Int:
		return nbtcode.AppendInt32(dst, w.order, tag.Value), nil
	case *nbt.Long:
		return nbtcode.AppendInt64(dst, w.order, tag.Value), nil
	case *nbt.Float:
		return nbtcode.AppendFloat32(dst, w.order, tag.Value), nil
	case *nbt.Double:
		return nbtcode.AppendFloat64(dst, w.order, tag.Value), nil
	case *nbt.String:
		return nbtcode.AppendString(dst, w.order, tag.Value)
	case *nbt.ByteArray:
		n, err := count32(len(tag.Value))
		if err != nil {
			return nil, err
		}
		dst = nbtcode.AppendInt32(dst, w.order, n)
		return append(dst, tag.Value...), nil
	case *nbt.IntArray:
		n, err := count32(len(tag.Value))
		if err != nil {
			return nil, err
		}
		dst = nbtcode.AppendInt32(dst, w.order, n)
		for _, v := range tag.Value {
			dst = nbtcode.AppendInt32(dst, w.order, v)
		}
		return dst, nil
	case *nbt.List:
		n, err := count32(tag.Len())
		if err != nil {
			return nil, err
		}
		dst = nbtcode.AppendUint8(dst, byte(tag.Elem()))
		dst = nbtcode.AppendInt32(dst, w.order, n)
		for _, elem := range tag.Tags() {
			// List elements are headerless: no discriminant, no name.
			if dst, err = w.appendValue(dst, elem, depth+1); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case *nbt.Compound:
		for _, elem := range tag.Tags() {
			var err error
			if dst, err = w.append(dst, elem, depth+1); err != nil {
				return nil, err
			}
		}
		return nbtcode.AppendUint8(dst, byte(nbt.TypeEnd)), nil
	}
	return nil, fmt.Errorf("binio: unknown tag implementation %T: %w", tag, nbt.ErrBadFormat)
}

func count32(n int) (int32, error) {
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("binio: %d elements exceed the 32-bit wire count: %w", n, nbt.ErrBadFormat)
	}
	return int32(n), nil
}
