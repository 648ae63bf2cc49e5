package convert

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mccanne/charm"
	"github.com/opennbt/nbt/cli"
	"github.com/opennbt/nbt/cmd/nbt/root"
	"github.com/opennbt/nbt/nbtfile"
	"github.com/opennbt/nbt/nbtio/anyio"
	"github.com/opennbt/nbt/nbtio/binio"
)

var Convert = &charm.Spec{
	Name:  "convert",
	Usage: "convert [options] -o output input",
	Short: "re-encode an NBT document",
	Long: `
The convert command reads one NBT document and writes it back with a
different byte order or compression.  The input compression is
detected; the input byte order is not self-describing, so give
-inorder when the source is little-endian.
`,
	New: New,
}

func init() {
	root.NBT.Add(Convert)
}

type Command struct {
	*root.Command
	inOrder     string
	outOrder    string
	compression string
	output      string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.inOrder, "inorder", "big", "byte order of the input, big or little")
	f.StringVar(&c.outOrder, "order", "big", "byte order of the output, big or little")
	f.StringVar(&c.compression, "z", "gzip", "output compression: none, gzip, zlib, or lz4")
	f.StringVar(&c.output, "o", "", "output file")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("nbt convert: exactly one input file required")
	}
	if c.output == "" {
		return errors.New("nbt convert: -o output file required")
	}
	inOrder, err := cli.ParseOrder(c.inOrder)
	if err != nil {
		return err
	}
	outOrder, err := cli.ParseOrder(c.outOrder)
	if err != nil {
		return err
	}
	compression, err := anyio.LookupCompression(c.compression)
	if err != nil {
		return err
	}
	file, err := nbtfile.OpenWithOpts(args[0], binio.ReaderOpts{Order: inOrder})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	file.Order = outOrder
	file.Compression = compression
	return file.Save(c.output)
}
