// Package repl is a simple read-eval-print loop.  It calls the
// Consumer to do all the eval work.
package repl

import (
	"github.com/peterh/liner"
)

type Consumer interface {
	Consume(line string) bool
	Prompt() string
}

// Completer supplies candidate completions for the current line.  A
// Consumer that also implements Completer gets tab completion.
type Completer interface {
	Complete(line string) []string
}

// Run executes the REPL until the Consumer reports it is done or the
// terminal reaches end of input.
func Run(c Consumer) error {
	l := liner.NewLiner()
	defer l.Close()
	l.SetMultiLineMode(true)
	if completer, ok := c.(Completer); ok {
		l.SetCompleter(completer.Complete)
	}
	for {
		line, err := l.Prompt(c.Prompt())
		if err != nil {
			return err
		}
		if c.Consume(line) {
			return nil
		}
		l.AppendHistory(line)
	}
}
