package dump

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mccanne/charm"
	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/cli"
	"github.com/opennbt/nbt/cmd/nbt/root"
	"github.com/opennbt/nbt/nbtio"
	"github.com/opennbt/nbt/nbtio/anyio"
	"github.com/opennbt/nbt/nbtio/binio"
	"github.com/opennbt/nbt/nbtio/jsonio"
	"github.com/opennbt/nbt/nbtio/regionio"
	"github.com/opennbt/nbt/nbtio/textio"
	"github.com/opennbt/nbt/tagpath"
)

var Dump = &charm.Spec{
	Name:  "dump",
	Usage: "dump [options] file...",
	Short: "print the tags in NBT files",
	Long: `
The dump command decodes each input and prints every top-level tag.
Compression is detected from the stream; files ending in .mca or .mcr
are read as region files and their chunks printed in index order.
Use "-" to read from stdin, -p to print only the subtree at a tag
path like "Level.Pos[1]", and -f json for JSON output.
`,
	New: New,
}

func init() {
	root.NBT.Add(Dump)
}

type Command struct {
	*root.Command
	path   string
	format string
	order  string
	limit  string
	color  string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.path, "p", "", "print only the subtree at this tag path")
	f.StringVar(&c.format, "f", "tree", "output format, tree or json")
	f.StringVar(&c.order, "order", "big", "byte order of the input, big or little")
	f.StringVar(&c.limit, "limit", "", "cap any single length count, as '64MB' or '1GiB'")
	f.StringVar(&c.color, "C", "auto", "color tree output: auto, always, or never")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		return errors.New("nbt dump: no input files")
	}
	opts, err := c.readerOpts()
	if err != nil {
		return err
	}
	writer, err := c.writer()
	if err != nil {
		return err
	}
	var readers []nbtio.Reader
	defer func() { nbtio.CloseReaders(readers) }()
	for _, path := range args {
		reader, err := c.open(path, opts)
		if err != nil {
			return err
		}
		readers = append(readers, reader)
	}
	reader := nbtio.ConcatReader(readers...)
	if c.path != "" {
		path, err := tagpath.Parse(c.path)
		if err != nil {
			return err
		}
		reader = &extractReader{reader, path}
	}
	return nbtio.Copy(writer, reader)
}

func (c *Command) readerOpts() (binio.ReaderOpts, error) {
	var opts binio.ReaderOpts
	order, err := cli.ParseOrder(c.order)
	if err != nil {
		return opts, err
	}
	limit, err := cli.ParseLimit(c.limit)
	if err != nil {
		return opts, err
	}
	opts.Order = order
	opts.MaxBytes = limit
	return opts, nil
}

func (c *Command) writer() (nbtio.Writer, error) {
	out := nbtio.NopCloser(os.Stdout)
	switch c.format {
	case "tree":
		color, err := cli.Color(c.color, os.Stdout)
		if err != nil {
			return nil, err
		}
		return textio.NewWriter(out, textio.WriterOpts{Color: color}), nil
	case "json":
		return jsonio.NewWriter(out), nil
	}
	return nil, fmt.Errorf("bad output format %q (want tree or json)", c.format)
}

func (c *Command) open(path string, opts binio.ReaderOpts) (nbtio.Reader, error) {
	if path == "-" {
		raw, _, err := anyio.Uncompress(os.Stdin)
		if err != nil {
			return nil, err
		}
		return binio.NewReaderWithOpts(raw, opts), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".mca", ".mcr":
		reader, err := regionio.NewReaderWithOpts(f, opts)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nbtio.NewReadCloser(reader, f), nil
	}
	raw, _, err := anyio.Uncompress(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nbtio.NewReadCloser(binio.NewReaderWithOpts(raw, opts), f), nil
}

// extractReader narrows each tag from the underlying reader to the
// subtree at path.
type extractReader struct {
	reader nbtio.Reader
	path   tagpath.Path
}

func (e *extractReader) Read() (nbt.Tag, error) {
	tag, err := e.reader.Read()
	if tag == nil || err != nil {
		return nil, err
	}
	return tagpath.Lookup(tag, e.path)
}
