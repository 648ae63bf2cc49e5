package textio

import (
	"fmt"
	"io"

	"github.com/opennbt/nbt"
)

type WriterOpts struct {
	// Color wraps type names, tag names, and values in ANSI escapes.
	Color bool
}

type Writer struct {
	writer    io.WriteCloser
	formatter *Formatter
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	return &Writer{
		writer:    w,
		formatter: NewFormatter(opts.Color),
	}
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func (w *Writer) Write(tag nbt.Tag) error {
	_, err := fmt.Fprintf(w.writer, "%s\n", w.formatter.Format(tag))
	return err
}
