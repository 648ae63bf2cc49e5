package regionio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio/binio"
	"golang.org/x/sync/errgroup"
)

// Chunk is one decoded region entry.
type Chunk struct {
	X, Z      int
	Timestamp time.Time
	Root      *nbt.Compound
}

// Reader decodes chunks out of a region file.  Random access through
// ReadChunk, sequential access through Read, or the whole grid at
// once through ReadAll.
type Reader struct {
	r       io.ReaderAt
	opts    binio.ReaderOpts
	offsets [entries]uint32
	stamps  [entries]uint32
	next    int
}

func NewReader(r io.ReaderAt) (*Reader, error) {
	return NewReaderWithOpts(r, binio.ReaderOpts{})
}

// NewReaderWithOpts reads the region header and returns a Reader.
// The options bound each chunk decode; the byte order is pinned to
// big-endian, which is what region chunks are.
func NewReaderWithOpts(r io.ReaderAt, opts binio.ReaderOpts) (*Reader, error) {
	opts.Order = binary.BigEndian
	var header [headerSize]byte
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, headerSize), header[:]); err != nil {
		return nil, fmt.Errorf("regionio: header: %w", nbt.ErrTruncated)
	}
	reader := &Reader{r: r, opts: opts}
	for i := 0; i < entries; i++ {
		reader.offsets[i] = binary.BigEndian.Uint32(header[4*i:])
		reader.stamps[i] = binary.BigEndian.Uint32(header[SectorSize+4*i:])
	}
	return reader, nil
}

// Present reports whether the chunk at (x, z) exists.  Out-of-range
// coordinates are simply not present.
func (r *Reader) Present(x, z int) bool {
	i, err := index(x, z)
	return err == nil && r.offsets[i] != 0
}

// Timestamp returns the chunk's modification time, or the zero time
// for an absent chunk.
func (r *Reader) Timestamp(x, z int) time.Time {
	i, err := index(x, z)
	if err != nil || r.offsets[i] == 0 {
		return time.Time{}
	}
	return time.Unix(int64(r.stamps[i]), 0).UTC()
}

// ReadChunk decodes the chunk at (x, z), returning nil and no error
// when the chunk is absent.
func (r *Reader) ReadChunk(x, z int) (*nbt.Compound, error) {
	i, err := index(x, z)
	if err != nil {
		return nil, err
	}
	if r.offsets[i] == 0 {
		return nil, nil
	}
	root, err := r.readEntry(i)
	if err != nil {
		return nil, fmt.Errorf("regionio: chunk (%d,%d): %w", x, z, err)
	}
	return root, nil
}

// Read returns present chunk roots in index order and nil, nil after
// the last, so a region file can feed any tag pipeline.
func (r *Reader) Read() (nbt.Tag, error) {
	for r.next < entries {
		i := r.next
		r.next++
		if r.offsets[i] == 0 {
			continue
		}
		root, err := r.readEntry(i)
		if err != nil {
			return nil, fmt.Errorf("regionio: chunk (%d,%d): %w", i%Width, i/Width, err)
		}
		return root, nil
	}
	return nil, nil
}

// ReadAll decodes every present chunk, fanning the independent
// documents out across goroutines.  Chunks come back in index order.
func (r *Reader) ReadAll(ctx context.Context) ([]Chunk, error) {
	var roots [entries]*nbt.Compound
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < entries; i++ {
		if r.offsets[i] == 0 {
			continue
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := r.readEntry(i)
			if err != nil {
				return fmt.Errorf("regionio: chunk (%d,%d): %w", i%Width, i/Width, err)
			}
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var chunks []Chunk
	for i, root := range roots {
		if root == nil {
			continue
		}
		chunks = append(chunks, Chunk{
			X:         i % Width,
			Z:         i / Width,
			Timestamp: time.Unix(int64(r.stamps[i]), 0).UTC(),
			Root:      root,
		})
	}
	return chunks, nil
}

func (r *Reader) readEntry(i int) (*nbt.Compound, error) {
	entry := r.offsets[i]
	off := int64(entry>>8) * SectorSize
	allocated := int64(entry&0xff) * SectorSize
	var head [5]byte
	if _, err := io.ReadFull(io.NewSectionReader(r.r, off, 5), head[:]); err != nil {
		return nil, fmt.Errorf("length: %w", nbt.ErrTruncated)
	}
	n := binary.BigEndian.Uint32(head[:4])
	if n == 0 || int64(n)+4 > allocated {
		return nil, fmt.Errorf("length %d overflows %d allocated sectors: %w", n, entry&0xff, nbt.ErrBadFormat)
	}
	payload, err := schemeReader(head[4], io.NewSectionReader(r.r, off+5, int64(n-1)))
	if err != nil {
		return nil, err
	}
	return binio.NewReaderWithOpts(payload, r.opts).ReadDocument()
}
