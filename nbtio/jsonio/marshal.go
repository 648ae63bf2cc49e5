package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/opennbt/nbt"
)

func marshal(tag nbt.Tag) interface{} {
	switch tag := tag.(type) {
	case *nbt.Byte:
		return tag.Value
	case *nbt.Short:
		return tag.Value
	case *nbt.Int:
		return tag.Value
	case *nbt.Long:
		return tag.Value
	case *nbt.Float:
		return marshalFloat(float64(tag.Value), tag.Value)
	case *nbt.Double:
		return marshalFloat(tag.Value, tag.Value)
	case *nbt.String:
		return tag.Value
	case *nbt.ByteArray:
		a := make([]int8, len(tag.Value))
		for i, b := range tag.Value {
			a[i] = int8(b)
		}
		return a
	case *nbt.IntArray:
		return tag.Value
	case *nbt.List:
		a := make([]interface{}, 0, tag.Len())
		for _, elem := range tag.Tags() {
			a = append(a, marshal(elem))
		}
		return a
	case *nbt.Compound:
		o := make(object, 0, tag.Len())
		for _, child := range tag.Tags() {
			o = append(o, field{child.Name(), marshal(child)})
		}
		return o
	default:
		return fmt.Sprintf("(unknown %T)", tag)
	}
}

// JSON numbers cannot encode NaN or the infinities, so those go out
// as strings.
func marshalFloat(v float64, number interface{}) interface{} {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return number
}

// object preserves compound insertion order, which encoding/json's
// map marshaling would sort away.
type object []field

type field struct {
	key string
	val interface{}
}

func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		val, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
