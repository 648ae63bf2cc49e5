package explore

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mccanne/charm"
	"github.com/opennbt/nbt"
	"github.com/opennbt/nbt/cli"
	"github.com/opennbt/nbt/cmd/nbt/root"
	"github.com/opennbt/nbt/nbtfile"
	"github.com/opennbt/nbt/nbtio/binio"
	"github.com/opennbt/nbt/nbtio/textio"
	"github.com/opennbt/nbt/pkg/repl"
	"github.com/opennbt/nbt/tagpath"
	"golang.org/x/exp/slices"
)

var Explore = &charm.Spec{
	Name:  "explore",
	Usage: "explore [options] file",
	Short: "walk an NBT document interactively",
	Long: `
The explore command loads one NBT document and opens a read-only
shell over its tree: ls, cd, cat, and pwd work on tag paths like
"Level.Pos[1]", with tab completion of child names.  Type help for
the command list and exit (or ctrl-d) to leave.
`,
	New: New,
}

func init() {
	root.NBT.Add(Explore)
}

type Command struct {
	*root.Command
	order string
	color string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.order, "order", "big", "byte order of the input, big or little")
	f.StringVar(&c.color, "C", "auto", "color cat output: auto, always, or never")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("nbt explore: exactly one file required")
	}
	order, err := cli.ParseOrder(c.order)
	if err != nil {
		return err
	}
	color, err := cli.Color(c.color, os.Stdout)
	if err != nil {
		return err
	}
	file, err := nbtfile.OpenWithOpts(args[0], binio.ReaderOpts{Order: order})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	s := &session{
		file:      file,
		cwd:       tagpath.NewRoot(),
		out:       os.Stdout,
		formatter: textio.NewFormatter(color),
	}
	if err := repl.Run(s); err != nil && err != io.EOF {
		return err
	}
	return nil
}

type session struct {
	file      *nbtfile.File
	cwd       tagpath.Path
	out       io.Writer
	formatter *textio.Formatter
}

func (s *session) Prompt() string {
	return s.cwd.String() + "> "
}

func (s *session) Consume(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	var err error
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "exit", "quit":
		return true
	case "help":
		s.help()
	case "pwd":
		fmt.Fprintln(s.out, s.cwd)
	case "ls":
		err = s.ls(args)
	case "cd":
		err = s.cd(args)
	case "cat":
		err = s.cat(args)
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
	}
	return false
}

// Complete finishes the first word from the command list and later
// words from the child names of the current compound.
func (s *session) Complete(line string) []string {
	var out []string
	i := strings.LastIndexByte(line, ' ')
	if i < 0 {
		for _, cmd := range []string{"cat ", "cd ", "ls ", "pwd", "help", "exit"} {
			if strings.HasPrefix(cmd, line) {
				out = append(out, cmd)
			}
		}
		return out
	}
	head, prefix := line[:i+1], line[i+1:]
	tag, err := tagpath.Lookup(s.file.Root, s.cwd)
	if err != nil {
		return nil
	}
	compound, ok := tag.(*nbt.Compound)
	if !ok {
		return nil
	}
	for _, key := range compound.Keys() {
		if strings.HasPrefix(key, prefix) {
			out = append(out, head+key)
		}
	}
	return out
}

func (s *session) help() {
	fmt.Fprint(s.out, `ls [path]   list the children of a container
cd [path]   change the current container (.. and / work)
cat [path]  print the subtree at a path
pwd         print the current path
exit        leave
`)
}

func (s *session) resolve(arg string) (tagpath.Path, error) {
	switch arg {
	case "", ".":
		return s.cwd, nil
	case "/":
		return tagpath.NewRoot(), nil
	case "..":
		if len(s.cwd) == 0 {
			return s.cwd, nil
		}
		return s.cwd[:len(s.cwd)-1], nil
	}
	path, err := tagpath.Parse(arg)
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(s.cwd), path...), nil
}

func (s *session) lookup(args []string) (tagpath.Path, nbt.Tag, error) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := s.resolve(arg)
	if err != nil {
		return nil, nil, err
	}
	tag, err := tagpath.Lookup(s.file.Root, path)
	if err != nil {
		return nil, nil, err
	}
	return path, tag, nil
}

func (s *session) ls(args []string) error {
	_, tag, err := s.lookup(args)
	if err != nil {
		return err
	}
	switch tag := tag.(type) {
	case *nbt.Compound:
		for _, child := range tag.Tags() {
			fmt.Fprintf(s.out, "%-16s %s\n", child.Type(), child.Name())
		}
	case *nbt.List:
		for i, child := range tag.Tags() {
			fmt.Fprintf(s.out, "%-16s [%d]\n", child.Type(), i)
		}
	default:
		fmt.Fprintln(s.out, s.formatter.Format(tag))
	}
	return nil
}

func (s *session) cd(args []string) error {
	if len(args) == 0 {
		s.cwd = tagpath.NewRoot()
		return nil
	}
	path, tag, err := s.lookup(args)
	if err != nil {
		return err
	}
	switch tag.(type) {
	case *nbt.Compound, *nbt.List:
		s.cwd = path
		return nil
	}
	return fmt.Errorf("%s: not a container", path)
}

func (s *session) cat(args []string) error {
	_, tag, err := s.lookup(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.formatter.Format(tag))
	return nil
}
