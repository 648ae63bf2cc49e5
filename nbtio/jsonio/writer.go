package jsonio

import (
	"encoding/json"
	"io"

	"github.com/opennbt/nbt"
)

// Writer exports one JSON document per tag.  The mapping is lossy
// (tag widths and names inside lists are gone), so there is no
// matching reader.
type Writer struct {
	io.Closer
	encoder *json.Encoder
}

func NewWriter(wc io.WriteCloser) *Writer {
	return &Writer{
		Closer:  wc,
		encoder: json.NewEncoder(wc),
	}
}

func (w *Writer) Write(tag nbt.Tag) error {
	return w.encoder.Encode(marshal(tag))
}
