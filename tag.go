package nbt

// Tag is implemented by the eleven concrete tag variants.  A tag's name
// is tri-state: a tag decoded from a list body or built by a New*
// constructor is unnamed, while a tag decoded from a compound body or a
// document root is named, possibly with the empty string.  The two
// states are distinct on the wire, so Named must be consulted before
// Name.
type Tag interface {
	Type() Type
	Name() string
	Named() bool
	SetName(string)
}

// tagName is embedded by every variant to carry the name tri-state.
type tagName struct {
	name  string
	named bool
}

func (t *tagName) Name() string { return t.name }

func (t *tagName) Named() bool { return t.named }

func (t *tagName) SetName(name string) {
	t.name = name
	t.named = true
}
