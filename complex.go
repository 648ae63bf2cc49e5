package nbt

import "fmt"

// List holds an ordered sequence of tags that all share one element
// type, fixed when the list is created.  List elements carry no names
// on the wire; a name set on an element in memory is not serialized.
type List struct {
	tagName
	elem Type
	tags []Tag
}

// NewList returns an empty list whose elements must have type elem.
// TypeEnd is a legal element type for a list that stays empty; no tag
// has it, so Append can never succeed on such a list.
func NewList(elem Type) *List {
	return &List{elem: elem}
}

func (*List) Type() Type { return TypeList }

// Elem returns the element type fixed at construction.
func (l *List) Elem() Type { return l.elem }

func (l *List) Len() int { return len(l.tags) }

// Append adds tags to the list.  A nil tag or a tag whose type differs
// from the list's element type is rejected with ErrTypeMismatch,
// leaving the list unchanged.
func (l *List) Append(tags ...Tag) error {
	for _, tag := range tags {
		if tag == nil {
			return fmt.Errorf("cannot append nil to list of %s: %w", l.elem, ErrTypeMismatch)
		}
		if typ := tag.Type(); typ != l.elem {
			return fmt.Errorf("cannot append %s to list of %s: %w", typ, l.elem, ErrTypeMismatch)
		}
	}
	l.tags = append(l.tags, tags...)
	return nil
}

// At returns the i'th element.
func (l *List) At(i int) Tag { return l.tags[i] }

// Tags returns the element slice in order.
func (l *List) Tags() []Tag { return l.tags }

// Compound holds an insertion-ordered mapping from string keys to
// tags.  Every element is named and its name equals its key; Set
// maintains the invariant.
type Compound struct {
	tagName
	tags []Tag
	lut  map[string]int
}

func NewCompound() *Compound {
	return &Compound{lut: make(map[string]int)}
}

func (*Compound) Type() Type { return TypeCompound }

// Set stores tag under key.  An unnamed tag is named after the key; a
// tag already named something else is rejected with ErrTypeMismatch so
// a key can never disagree with its element's name.  Setting an
// existing key replaces the element in place, keeping its position.
func (c *Compound) Set(key string, tag Tag) error {
	if tag == nil {
		return fmt.Errorf("cannot set nil tag at %q: %w", key, ErrTypeMismatch)
	}
	if !tag.Named() {
		tag.SetName(key)
	} else if name := tag.Name(); name != key {
		return fmt.Errorf("key %q conflicts with tag name %q: %w", key, name, ErrTypeMismatch)
	}
	if c.lut == nil {
		c.lut = make(map[string]int)
	}
	if i, ok := c.lut[key]; ok {
		c.tags[i] = tag
		return nil
	}
	c.lut[key] = len(c.tags)
	c.tags = append(c.tags, tag)
	return nil
}

// Lookup returns the tag stored under key.
func (c *Compound) Lookup(key string) (Tag, bool) {
	if i, ok := c.lut[key]; ok {
		return c.tags[i], true
	}
	return nil, false
}

func (c *Compound) Has(key string) bool {
	_, ok := c.lut[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (c *Compound) Delete(key string) bool {
	i, ok := c.lut[key]
	if !ok {
		return false
	}
	c.tags = append(c.tags[:i], c.tags[i+1:]...)
	delete(c.lut, key)
	for k, n := range c.lut {
		if n > i {
			c.lut[k] = n - 1
		}
	}
	return true
}

func (c *Compound) Len() int { return len(c.tags) }

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string {
	keys := make([]string, len(c.tags))
	for i, tag := range c.tags {
		keys[i] = tag.Name()
	}
	return keys
}

// Tags returns the elements in insertion order.
func (c *Compound) Tags() []Tag { return c.tags }
