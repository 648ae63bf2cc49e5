package nbt

// Byte holds a signed 8-bit integer.
type Byte struct {
	tagName
	Value int8
}

func NewByte(v int8) *Byte { return &Byte{Value: v} }

func (*Byte) Type() Type { return TypeByte }

// Short holds a signed 16-bit integer.
type Short struct {
	tagName
	Value int16
}

func NewShort(v int16) *Short { return &Short{Value: v} }

func (*Short) Type() Type { return TypeShort }

// Int holds a signed 32-bit integer.
type Int struct {
	tagName
	Value int32
}

func NewInt(v int32) *Int { return &Int{Value: v} }

func (*Int) Type() Type { return TypeInt }

// Long holds a signed 64-bit integer.
type Long struct {
	tagName
	Value int64
}

func NewLong(v int64) *Long { return &Long{Value: v} }

func (*Long) Type() Type { return TypeLong }

// Float holds an IEEE-754 single-precision float.
type Float struct {
	tagName
	Value float32
}

func NewFloat(v float32) *Float { return &Float{Value: v} }

func (*Float) Type() Type { return TypeFloat }

// Double holds an IEEE-754 double-precision float.
type Double struct {
	tagName
	Value float64
}

func NewDouble(v float64) *Double { return &Double{Value: v} }

func (*Double) Type() Type { return TypeDouble }

// String holds a length-prefixed string.  The bytes are carried as is;
// the codec does not require valid UTF-8.  The wire length field is a
// 16-bit unsigned count of bytes, so values longer than 65535 bytes
// cannot be encoded.
type String struct {
	tagName
	Value string
}

func NewString(v string) *String { return &String{Value: v} }

func (*String) Type() Type { return TypeString }
