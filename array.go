package nbt

// ByteArray holds a counted array of raw bytes.
type ByteArray struct {
	tagName
	Value []byte
}

func NewByteArray(v []byte) *ByteArray { return &ByteArray{Value: v} }

func (*ByteArray) Type() Type { return TypeByteArray }

// IntArray holds a counted array of signed 32-bit integers.
type IntArray struct {
	tagName
	Value []int32
}

func NewIntArray(v []int32) *IntArray { return &IntArray{Value: v} }

func (*IntArray) Type() Type { return TypeIntArray }
