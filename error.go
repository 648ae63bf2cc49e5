package nbt

import (
	"errors"
	"fmt"
)

var (
	// ErrBadFormat indicates input that violates the tag grammar: an
	// unknown discriminant, a document that does not begin with a
	// compound, a nonempty list of TAG_End, or nesting beyond a
	// reader's depth limit.
	ErrBadFormat = errors.New("malformed nbt")

	// ErrTruncated indicates input that ends before the structure it
	// promised, including length counts that are negative or cannot be
	// satisfied.
	ErrTruncated = errors.New("truncated nbt")

	// ErrTypeMismatch indicates a model constraint violation: a list
	// element of the wrong type or a compound key conflicting with its
	// element's name.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ErrUnnamedTag is returned when an unnamed tag reaches a context that
// must encode a name header, i.e. a document root or a compound
// element.  The wire has no way to mark a name as absent there, so
// writing the tag would silently change the tree.
var ErrUnnamedTag = fmt.Errorf("unnamed tag in named context: %w", ErrBadFormat)
