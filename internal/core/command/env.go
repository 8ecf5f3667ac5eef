package command

import (
	"fmt"
	"io"
)

// Environment wraps the single output sink commands write to. One exists per
// App and at most one command uses it at a time.
type Environment struct {
	out io.Writer
}

// NewEnvironment returns an Environment writing to w.
func NewEnvironment(w io.Writer) *Environment {
	if w == nil {
		w = io.Discard
	}
	return &Environment{out: w}
}

// Write implements io.Writer. Sink failures are reported as KindIO errors.
func (e *Environment) Write(p []byte) (int, error) {
	n, err := e.out.Write(p)
	if err != nil {
		return n, IO(err)
	}
	if n < len(p) {
		return n, IO(io.ErrShortWrite)
	}
	return n, nil
}

func (e *Environment) Printf(format string, a ...any) error {
	_, err := fmt.Fprintf(e, format, a...)
	return err
}

func (e *Environment) Println(a ...any) error {
	_, err := fmt.Fprintln(e, a...)
	return err
}
