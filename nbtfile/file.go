// Package nbtfile reads and writes whole NBT documents: one named
// compound root per file, optionally compressed.
package nbtfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/nbtio/anyio"
	"github.com/opennbt/nbt/nbtio/binio"
	"go.uber.org/multierr"
)

// File is one NBT document: a named compound root plus the byte
// order and compression it travels with.
type File struct {
	Root        *nbt.Compound
	Order       binary.ByteOrder
	Compression anyio.Compression
}

// New returns a document with an empty root compound named name and
// the conventional defaults, big-endian and gzip.
func New(name string) *File {
	root := nbt.NewCompound()
	root.SetName(name)
	return &File{
		Root:        root,
		Order:       binary.BigEndian,
		Compression: anyio.Gzip,
	}
}

// Read decodes a big-endian document from r, sniffing and undoing
// any compression.
func Read(r io.Reader) (*File, error) {
	return ReadWithOpts(r, binio.ReaderOpts{})
}

// ReadWithOpts is Read with decoder options.  The detected
// compression and the effective byte order are recorded on the
// returned File so a later Write round-trips the container.
func ReadWithOpts(r io.Reader, opts binio.ReaderOpts) (*File, error) {
	raw, compression, err := anyio.Uncompress(r)
	if err != nil {
		return nil, err
	}
	root, err := binio.NewReaderWithOpts(raw, opts).ReadDocument()
	if err != nil {
		return nil, err
	}
	order := opts.Order
	if order == nil {
		order = binary.BigEndian
	}
	return &File{
		Root:        root,
		Order:       order,
		Compression: compression,
	}, nil
}

// Open reads the document at path.
func Open(path string) (*File, error) {
	return OpenWithOpts(path, binio.ReaderOpts{})
}

func OpenWithOpts(path string, opts binio.ReaderOpts) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	file, err := ReadWithOpts(r, opts)
	if err = multierr.Append(err, r.Close()); err != nil {
		return nil, err
	}
	return file, nil
}

// Write emits the document to w, compressed per f.Compression.  The
// root must be named; a root built by New carries the empty name,
// which is a name.
func (f *File) Write(w io.Writer) error {
	if f.Root == nil {
		return fmt.Errorf("nbtfile: nil root: %w", nbt.ErrBadFormat)
	}
	zw, err := anyio.NewCompressor(w, f.Compression)
	if err != nil {
		return err
	}
	writer := binio.NewWriter(zw, binio.WriterOpts{Order: f.Order})
	err = writer.Write(f.Root)
	return multierr.Append(err, writer.Close())
}

// Save writes the document to path through a temp file and a rename
// so a failed save leaves any existing file untouched.
func (f *File) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	err = f.Write(tmp)
	err = multierr.Append(err, tmp.Close())
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
