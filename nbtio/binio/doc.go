// Package binio reads and writes tag trees in the NBT binary format.
// The Reader and Writer types implement the nbtio.Reader and
// nbtio.Writer interfaces over a byte stream: each Read decodes one
// header-ful tag and each Write encodes one.  The format is
// self-describing, so no schema travels beside the stream; every tag
// announces itself with a one-byte discriminant, carries a
// length-prefixed name when its context calls for one, and nests by
// plain recursion.  Reader.ReadDocument additionally enforces the
// document rule that a well-formed NBT file begins with a named
// compound.  Decode errors say where the input broke, as a tag path
// and byte offset.
package binio
