package nbt

import (
	"bytes"

	"golang.org/x/exp/slices"
)

// Equal reports whether a and b are structurally equal: same variant,
// same name state, and the same value at every level.  Compound
// elements are compared by key without regard to order; list elements
// in order.  Two NaN floats of the same width compare equal so a tree
// always equals itself.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() || a.Named() != b.Named() {
		return false
	}
	if a.Named() && a.Name() != b.Name() {
		return false
	}
	switch a := a.(type) {
	case *Byte:
		b, ok := b.(*Byte)
		return ok && a.Value == b.Value
	case *Short:
		b, ok := b.(*Short)
		return ok && a.Value == b.Value
	case *Int:
		b, ok := b.(*Int)
		return ok && a.Value == b.Value
	case *Long:
		b, ok := b.(*Long)
		return ok && a.Value == b.Value
	case *Float:
		b, ok := b.(*Float)
		return ok && (a.Value == b.Value || (a.Value != a.Value && b.Value != b.Value))
	case *Double:
		b, ok := b.(*Double)
		return ok && (a.Value == b.Value || (a.Value != a.Value && b.Value != b.Value))
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *ByteArray:
		b, ok := b.(*ByteArray)
		return ok && bytes.Equal(a.Value, b.Value)
	case *IntArray:
		b, ok := b.(*IntArray)
		return ok && slices.Equal(a.Value, b.Value)
	case *List:
		b, ok := b.(*List)
		if !ok || a.Elem() != b.Elem() || a.Len() != b.Len() {
			return false
		}
		for i, tag := range a.Tags() {
			if !Equal(tag, b.At(i)) {
				return false
			}
		}
		return true
	case *Compound:
		b, ok := b.(*Compound)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, tag := range a.Tags() {
			other, ok := b.Lookup(tag.Name())
			if !ok || !Equal(tag, other) {
				return false
			}
		}
		return true
	}
	return false
}
