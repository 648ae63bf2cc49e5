package main

import (
	"fmt"
	"os"

	_ "github.com/opennbt/nbt/cmd/nbt/convert"
	_ "github.com/opennbt/nbt/cmd/nbt/dump"
	_ "github.com/opennbt/nbt/cmd/nbt/explore"
	"github.com/opennbt/nbt/cmd/nbt/root"
)

func main() {
	if _, err := root.NBT.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
