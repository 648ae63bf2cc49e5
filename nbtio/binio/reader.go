package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtcode"
	"github.com/opennbt/nbt/tagpath"
	"github.com/pbnjay/memory"
	"golang.org/x/exp/slices"
)

const (
	// DefaultMaxDepth bounds container nesting so hostile input
	// cannot blow the stack.
	DefaultMaxDepth = 512

	// nameCacheSize bounds the interned-name cache.
	nameCacheSize = 8192
)

// DefaultMaxBytes is the default cap on the payload bytes a single
// length count may claim: an eighth of physical memory, which keeps a
// corrupt count from taking down the process while letting any
// practical document through.
func DefaultMaxBytes() int64 {
	if total := memory.TotalMemory(); total != 0 {
		return int64(total / 8)
	}
	return 1 << 30
}

// Error describes where a decode failed: the path of the tag being
// decoded and the stream offset reached.  It wraps one of the
// taxonomy errors in package nbt.
type Error struct {
	Path   tagpath.Path
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("binio: error at %s, offset %d: %s", e.Path, e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type ReaderOpts struct {
	// Order is the byte order of the stream.  Nil means
	// binary.BigEndian, the NBT default.
	Order binary.ByteOrder
	// MaxDepth bounds container nesting.  Zero means DefaultMaxDepth;
	// a negative value disables the bound.
	MaxDepth int
	// MaxBytes caps the payload bytes any single length count may
	// claim.  Zero means DefaultMaxBytes(); a negative value disables
	// the cap.
	MaxBytes int64
}

type Reader struct {
	code     *nbtcode.Reader
	maxDepth int
	maxBytes int64
	names    *lru.Cache[string, string]
	path     tagpath.Path
}

func NewReader(r io.Reader) *Reader {
	return NewReaderWithOpts(r, ReaderOpts{})
}

func NewReaderWithOpts(r io.Reader, opts ReaderOpts) *Reader {
	order := opts.Order
	if order == nil {
		order = binary.BigEndian
	}
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes()
	}
	// The error from lru.New fires only on a nonpositive size.
	names, _ := lru.New[string, string](nameCacheSize)
	return &Reader{
		code:     nbtcode.NewReader(r, order),
		maxDepth: maxDepth,
		maxBytes: maxBytes,
		names:    names,
	}
}

// Read returns the next named tag in the stream, or nil at end of
// stream.  Any tag variant may appear at top level; ReadDocument is
// the entry point that insists on the document rule.
func (r *Reader) Read() (nbt.Tag, error) {
	r.path = r.path[:0]
	id, err := r.code.ReadByte()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, r.error(err)
	}
	return r.readTag(id, 0)
}

// ReadDocument returns the next tag, requiring it to be a compound,
// the only legal root of an NBT document.
func (r *Reader) ReadDocument() (*nbt.Compound, error) {
	r.path = r.path[:0]
	id, err := r.code.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty input: %w", nbt.ErrTruncated)
		}
		return nil, r.error(err)
	}
	if id != byte(nbt.TypeCompound) {
		return nil, r.error(fmt.Errorf("not a valid nbt document (first byte 0x%02x, want TAG_Compound): %w", id, nbt.ErrBadFormat))
	}
	tag, err := r.readTag(id, 0)
	if err != nil {
		return nil, err
	}
	return tag.(*nbt.Compound), nil
}

// readTag decodes a header-ful tag: discriminant id already consumed,
// then name, then value.
func (r *Reader) readTag(id byte, depth int) (nbt.Tag, error) {
	typ, ok := nbt.LookupType(id)
	if !ok {
		return nil, r.error(fmt.Errorf("unknown tag discriminant 0x%02x: %w", id, nbt.ErrBadFormat))
	}
	if typ == nbt.TypeEnd {
		return nil, r.error(fmt.Errorf("TAG_End cannot begin a tag: %w", nbt.ErrBadFormat))
	}
	name, err := r.code.ReadString()
	if err != nil {
		return nil, r.error(err)
	}
	name = r.intern(name)
	// Paths are relative to the top-level tag, matching tagpath.Lookup
	// addressing, so the top-level tag's own name stays out.
	if depth > 0 {
		r.path = append(r.path, name)
	}
	tag, err := r.readValue(typ, depth)
	if err != nil {
		return nil, err
	}
	if depth > 0 {
		r.path = r.path[:len(r.path)-1]
	}
	tag.SetName(name)
	return tag, nil
}

func (r *Reader) readValue(typ nbt.Type, depth int) (nbt.Tag, error) {
	if r.maxDepth >= 0 && depth > r.maxDepth {
		return nil, r.error(fmt.Errorf("nesting deeper than %d levels: %w", r.maxDepth, nbt.ErrBadFormat))
	}
	switch typ {
	case nbt.TypeByte:
		v, err := r.code.ReadInt8()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewByte(v), nil
	case nbt.TypeShort:
		v, err := r.code.ReadInt16()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewShort(v), nil
	case nbt.TypeInt:
		v, err := r.code.ReadInt32()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewInt(v), nil
	case nbt.TypeLong:
		v, err := r.code.ReadInt64()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewLong(v), nil
	case nbt.TypeFloat:
		v, err := r.code.ReadFloat32()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewFloat(v), nil
	case nbt.TypeDouble:
		v, err := r.code.ReadFloat64()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewDouble(v), nil
	case nbt.TypeString:
		v, err := r.code.ReadString()
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewString(v), nil
	case nbt.TypeByteArray:
		n, err := r.count(1)
		if err != nil {
			return nil, err
		}
		b, err := r.code.ReadBytes(n)
		if err != nil {
			return nil, r.error(err)
		}
		return nbt.NewByteArray(b), nil
	case nbt.TypeIntArray:
		n, err := r.count(4)
		if err != nil {
			return nil, err
		}
		b, err := r.code.ReadBytes(n * 4)
		if err != nil {
			return nil, r.error(err)
		}
		order := r.code.Order()
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = int32(order.Uint32(b[4*i:]))
		}
		return nbt.NewIntArray(vals), nil
	case nbt.TypeList:
		return r.readList(depth)
	case nbt.TypeCompound:
		return r.readCompound(depth)
	}
	panic("unreachable: " + typ.String())
}

func (r *Reader) readList(depth int) (nbt.Tag, error) {
	id, err := r.code.ReadByte()
	if err != nil {
		return nil, r.error(eof(err))
	}
	elem, ok := nbt.LookupType(id)
	if !ok {
		return nil, r.error(fmt.Errorf("unknown element discriminant 0x%02x: %w", id, nbt.ErrBadFormat))
	}
	n, err := r.count(minWidth[elem])
	if err != nil {
		return nil, err
	}
	if elem == nbt.TypeEnd && n > 0 {
		return nil, r.error(fmt.Errorf("list of %d TAG_End elements: %w", n, nbt.ErrBadFormat))
	}
	list := nbt.NewList(elem)
	for i := int64(0); i < n; i++ {
		r.path = append(r.path, tagpath.Index(int(i)))
		tag, err := r.readValue(elem, depth+1)
		if err != nil {
			return nil, err
		}
		r.path = r.path[:len(r.path)-1]
		if err := list.Append(tag); err != nil {
			return nil, r.error(err)
		}
	}
	return list, nil
}

func (r *Reader) readCompound(depth int) (nbt.Tag, error) {
	c := nbt.NewCompound()
	for {
		id, err := r.code.ReadByte()
		if err != nil {
			return nil, r.error(eof(err))
		}
		if id == byte(nbt.TypeEnd) {
			return c, nil
		}
		tag, err := r.readTag(id, depth+1)
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep the last value, in the first position.
		if err := c.Set(tag.Name(), tag); err != nil {
			return nil, r.error(err)
		}
	}
}

// count reads a 4-byte signed element count and checks that the
// implied payload could exist.  A negative count, or one whose byte
// size passes the reader's limit, cannot be satisfied by any stream
// and is reported as a truncation.
func (r *Reader) count(elemSize int64) (int64, error) {
	n, err := r.code.ReadInt32()
	if err != nil {
		return 0, r.error(err)
	}
	if n < 0 {
		return 0, r.error(fmt.Errorf("negative length %d: %w", n, nbt.ErrTruncated))
	}
	if size := int64(n) * elemSize; r.maxBytes >= 0 && size > r.maxBytes {
		return 0, r.error(fmt.Errorf("length of %d bytes exceeds limit of %d: %w", size, r.maxBytes, nbt.ErrTruncated))
	}
	return int64(n), nil
}

// minWidth is the smallest wire size of a value of each type, the
// basis for sanity-checking list counts before elements are decoded.
var minWidth = [...]int64{
	nbt.TypeEnd:       0,
	nbt.TypeByte:      1,
	nbt.TypeShort:     2,
	nbt.TypeInt:       4,
	nbt.TypeLong:      8,
	nbt.TypeFloat:     4,
	nbt.TypeDouble:    8,
	nbt.TypeByteArray: 4,
	nbt.TypeString:    2,
	nbt.TypeList:      5,
	nbt.TypeCompound:  1,
	nbt.TypeIntArray:  4,
}

// intern returns a shared copy of name.  Real trees repeat a small set
// of keys over and over; the cache keeps one string per distinct name.
func (r *Reader) intern(name string) string {
	if s, ok := r.names.Get(name); ok {
		return s
	}
	r.names.Add(name, name)
	return name
}

func (r *Reader) error(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Path: slices.Clone(r.path), Offset: r.code.Offset(), Err: err}
}

// eof maps a clean end of stream seen mid-structure to a truncation.
func eof(err error) error {
	if err == io.EOF {
		return fmt.Errorf("binio: unexpected end of input: %w", nbt.ErrTruncated)
	}
	return err
}
