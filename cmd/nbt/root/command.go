package root

import (
	"flag"

	"github.com/mccanne/charm"
)

var NBT = &charm.Spec{
	Name:  "nbt",
	Usage: "nbt command [options] [arguments...]",
	Short: "print, convert, and explore NBT data",
	Long: `
The nbt commands read NBT in any of its containers: bare or
compressed documents, tag streams, and region files.  See the help
for each command for details.
`,
	New: New,
}

func init() {
	NBT.Add(charm.Help)
}

type Command struct {
	charm.Command
}

func New(_ charm.Command, _ *flag.FlagSet) (charm.Command, error) {
	return &Command{}, nil
}

func (c *Command) Run(args []string) error {
	return NBT.Exec(c, []string{"help"})
}
