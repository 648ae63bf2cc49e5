// Package cli holds flag-parsing helpers shared by the nbt commands.
package cli

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alecthomas/units"
	"golang.org/x/term"
)

// ParseOrder maps a -order flag value to a byte order.
func ParseOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "", "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("bad byte order %q (want big or little)", name)
}

// ParseLimit converts a human size like "64MB" or "1GiB" into a byte
// count.  The empty string means no override.
func ParseLimit(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return units.ParseStrictBytes(s)
}

// Color resolves a color mode against f: "always" and "never" are
// what they say, and "auto" enables color when f is a terminal.
func Color(mode string, f *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		return term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("bad color mode %q (want auto, always, or never)", mode)
}
