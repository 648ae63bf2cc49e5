// Package tagpath names locations in a tag tree: compound keys in
// order from the root, with list positions written as bracketed
// indices, e.g. "player.inventory[3].id".  Keys that themselves
// contain '.' or '[' cannot be written in this syntax; Parse rejects
// them rather than guessing.
package tagpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/opennbt/nbt"
)

// ErrMissing indicates a lookup of a key or index not present in the
// tree.
var ErrMissing = errors.New("missing")

type Path []string

func New(name string) Path {
	return Path{name}
}

// A root is an empty slice (not nil).
func NewRoot() Path {
	return Path{}
}

// Index returns the path element addressing position i of a list.
func Index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// IsIndex reports whether elem is a bracketed list index and returns
// its value.
func IsIndex(elem string) (int, bool) {
	if len(elem) < 3 || elem[0] != '[' || elem[len(elem)-1] != ']' {
		return 0, false
	}
	n, err := strconv.Atoi(elem[1 : len(elem)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Parse converts the dotted syntax to a Path.  The empty string names
// the root.
func Parse(s string) (Path, error) {
	if s == "" {
		return NewRoot(), nil
	}
	var path Path
	for _, part := range strings.Split(s, ".") {
		var indices []string
		for strings.HasSuffix(part, "]") {
			open := strings.LastIndexByte(part, '[')
			if open < 0 {
				return nil, fmt.Errorf("tagpath: unbalanced ']' in %q", s)
			}
			idx := part[open:]
			if _, ok := IsIndex(idx); !ok {
				return nil, fmt.Errorf("tagpath: bad index %q in %q", idx, s)
			}
			indices = append([]string{idx}, indices...)
			part = part[:open]
		}
		if strings.ContainsAny(part, "[]") {
			return nil, fmt.Errorf("tagpath: bad element %q in %q", part, s)
		}
		if part == "" && len(indices) == 0 {
			return nil, fmt.Errorf("tagpath: empty element in %q", s)
		}
		if part != "" {
			path = append(path, part)
		}
		path = append(path, indices...)
	}
	return path, nil
}

func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for i, elem := range p {
		if _, isIndex := IsIndex(elem); i > 0 && !isIndex {
			b.WriteByte('.')
		}
		b.WriteString(elem)
	}
	return b.String()
}

func (p Path) Leaf() string {
	return p[len(p)-1]
}

func (p Path) Equal(to Path) bool {
	if len(p) != len(to) {
		return false
	}
	for k := range p {
		if p[k] != to[k] {
			return false
		}
	}
	return true
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

func (p Path) HasStrictPrefix(prefix Path) bool {
	return len(p) > len(prefix) && prefix.Equal(p[:len(prefix)])
}

func (p Path) HasPrefix(prefix Path) bool {
	return len(p) >= len(prefix) && prefix.Equal(p[:len(prefix)])
}

// Lookup descends from tag along path, resolving compound keys and
// bracketed list indices, and returns the tag it lands on.  A missing
// key or out-of-range index wraps ErrMissing; descending into a tag
// that is not a container of the right kind wraps nbt.ErrTypeMismatch.
func Lookup(tag nbt.Tag, path Path) (nbt.Tag, error) {
	for i, elem := range path {
		if idx, ok := IsIndex(elem); ok {
			list, isList := tag.(*nbt.List)
			if !isList {
				return nil, fmt.Errorf("tagpath: %s is not a list: %w", path[:i], nbt.ErrTypeMismatch)
			}
			if idx >= list.Len() {
				return nil, fmt.Errorf("tagpath: %s has %d elements, no index %d: %w", path[:i], list.Len(), idx, ErrMissing)
			}
			tag = list.At(idx)
			continue
		}
		c, isCompound := tag.(*nbt.Compound)
		if !isCompound {
			return nil, fmt.Errorf("tagpath: %s is not a compound: %w", path[:i], nbt.ErrTypeMismatch)
		}
		child, ok := c.Lookup(elem)
		if !ok {
			return nil, fmt.Errorf("tagpath: %s has no key %q: %w", path[:i], elem, ErrMissing)
		}
		tag = child
	}
	return tag, nil
}
