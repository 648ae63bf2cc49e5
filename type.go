// Package nbt implements the NBT data model, a hierarchy of typed tags
// identified by a one-byte discriminant.  All eleven concrete tag
// variants are defined here and implement the Tag interface; TypeEnd is
// the twelfth discriminant and appears only on the wire, as the
// terminator of a compound body and as the element type of an empty
// list.  The binary encoding of tag trees lives in nbtio/binio, the
// human-readable rendering in nbtio/textio.  This package holds only
// the model: variants, names, and structural equality.
package nbt

import "fmt"

// Type is the one-byte discriminant that identifies a tag variant on
// the wire.  The set is closed: values outside End..IntArray do not
// name a type and are rejected by LookupType.
type Type byte

const (
	TypeEnd Type = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
)

var typeNames = [...]string{
	TypeEnd:       "TAG_End",
	TypeByte:      "TAG_Byte",
	TypeShort:     "TAG_Short",
	TypeInt:       "TAG_Int",
	TypeLong:      "TAG_Long",
	TypeFloat:     "TAG_Float",
	TypeDouble:    "TAG_Double",
	TypeByteArray: "TAG_Byte_Array",
	TypeString:    "TAG_String",
	TypeList:      "TAG_List",
	TypeCompound:  "TAG_Compound",
	TypeIntArray:  "TAG_Int_Array",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TAG_Invalid(0x%02x)", byte(t))
}

// LookupType maps a discriminant byte to its Type.  It is the single
// authority on the closed tag set: decoders accept a discriminant only
// if LookupType does.
func LookupType(id byte) (Type, bool) {
	if id <= byte(TypeIntArray) {
		return Type(id), true
	}
	return 0, false
}
