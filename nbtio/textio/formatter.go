package textio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/kr/text"
	"github.com/opennbt/nbt"
)

const indent = "  "

// Formatter renders tags in the classic NBT dump layout: one line per
// scalar, containers as an entry count followed by a braced block of
// their children.  The rendering is diagnostic output, not a format
// that reads back.
type Formatter struct {
	typ  func(format string, a ...interface{}) string
	name func(format string, a ...interface{}) string
	val  func(format string, a ...interface{}) string
}

// NewFormatter returns a Formatter.  With colored set, type names,
// tag names, and values are wrapped in ANSI colors.
func NewFormatter(colored bool) *Formatter {
	if !colored {
		return &Formatter{typ: fmt.Sprintf, name: fmt.Sprintf, val: fmt.Sprintf}
	}
	return &Formatter{
		typ:  color.New(color.FgCyan).SprintfFunc(),
		name: color.New(color.FgYellow).SprintfFunc(),
		val:  color.New(color.FgGreen).SprintfFunc(),
	}
}

// String renders tag without color.
func String(tag nbt.Tag) string {
	return NewFormatter(false).Format(tag)
}

// Format returns the rendering of tag, with no trailing newline.
func (f *Formatter) Format(tag nbt.Tag) string {
	var b strings.Builder
	f.format(&b, tag)
	return b.String()
}

func (f *Formatter) format(b *strings.Builder, tag nbt.Tag) {
	b.WriteString(f.typ("%s", tag.Type()))
	if tag.Named() {
		b.WriteByte('(')
		b.WriteString(f.name("%s", strconv.Quote(tag.Name())))
		b.WriteByte(')')
	}
	b.WriteString(": ")
	switch tag := tag.(type) {
	case *nbt.Byte:
		b.WriteString(f.val("%d", tag.Value))
	case *nbt.Short:
		b.WriteString(f.val("%d", tag.Value))
	case *nbt.Int:
		b.WriteString(f.val("%d", tag.Value))
	case *nbt.Long:
		b.WriteString(f.val("%d", tag.Value))
	case *nbt.Float:
		b.WriteString(f.val("%s", strconv.FormatFloat(float64(tag.Value), 'g', -1, 32)))
	case *nbt.Double:
		b.WriteString(f.val("%s", strconv.FormatFloat(tag.Value, 'g', -1, 64)))
	case *nbt.String:
		b.WriteString(f.val("%s", strconv.Quote(tag.Value)))
	case *nbt.ByteArray:
		b.WriteString(f.val("[%d bytes]", len(tag.Value)))
	case *nbt.IntArray:
		b.WriteString(f.val("[%d ints]", len(tag.Value)))
	case *nbt.List:
		fmt.Fprintf(b, "%d entries", tag.Len())
		f.block(b, tag.Tags())
	case *nbt.Compound:
		fmt.Fprintf(b, "%d entries", tag.Len())
		f.block(b, tag.Tags())
	default:
		fmt.Fprintf(b, "(unknown %T)", tag)
	}
}

func (f *Formatter) block(b *strings.Builder, tags []nbt.Tag) {
	b.WriteString("\n{\n")
	if len(tags) > 0 {
		var inner strings.Builder
		for i, tag := range tags {
			if i > 0 {
				inner.WriteByte('\n')
			}
			f.format(&inner, tag)
		}
		b.WriteString(text.Indent(inner.String(), indent))
		b.WriteByte('\n')
	}
	b.WriteString("}")
}
