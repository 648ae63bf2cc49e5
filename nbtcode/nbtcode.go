// Package nbtcode implements the primitive encodings shared by the NBT
// wire formats: fixed-width two's-complement integers, IEEE-754 floats,
// and length-prefixed strings, each in a caller-selected byte order.
//
// The Append functions grow a caller-owned buffer and return the
// extended buffer.  The Reader decodes the same encodings from a
// stream while tracking its byte offset so higher layers can say where
// a malformed input broke.
package nbtcode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/opennbt/nbt"
)

// MaxStringLen is the longest string the wire can carry.  The length
// prefix is a 16-bit unsigned count of bytes, not characters.
const MaxStringLen = math.MaxUint16

// AppendUint8 appends v to dst and returns the extended buffer.
func AppendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendInt8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

// AppendUint16 appends v to dst in the given byte order and returns
// the extended buffer.  The remaining fixed-width appenders follow the
// same contract.
func AppendUint16(dst []byte, order binary.ByteOrder, v uint16) []byte {
	var b [2]byte
	order.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func AppendInt16(dst []byte, order binary.ByteOrder, v int16) []byte {
	return AppendUint16(dst, order, uint16(v))
}

func AppendInt32(dst []byte, order binary.ByteOrder, v int32) []byte {
	var b [4]byte
	order.PutUint32(b[:], uint32(v))
	return append(dst, b[:]...)
}

func AppendInt64(dst []byte, order binary.ByteOrder, v int64) []byte {
	var b [8]byte
	order.PutUint64(b[:], uint64(v))
	return append(dst, b[:]...)
}

func AppendFloat32(dst []byte, order binary.ByteOrder, v float32) []byte {
	var b [4]byte
	order.PutUint32(b[:], math.Float32bits(v))
	return append(dst, b[:]...)
}

func AppendFloat64(dst []byte, order binary.ByteOrder, v float64) []byte {
	var b [8]byte
	order.PutUint64(b[:], math.Float64bits(v))
	return append(dst, b[:]...)
}

// AppendString appends the length prefix and bytes of s to dst and
// returns the extended buffer.  Strings longer than MaxStringLen do
// not fit the prefix and are rejected.
func AppendString(dst []byte, order binary.ByteOrder, s string) ([]byte, error) {
	if len(s) > MaxStringLen {
		return nil, fmt.Errorf("nbtcode: string of %d bytes exceeds the wire limit of %d: %w", len(s), MaxStringLen, nbt.ErrBadFormat)
	}
	dst = AppendUint16(dst, order, uint16(len(s)))
	return append(dst, s...), nil
}
