package command

import (
	"errors"
	"fmt"
)

// Kind classifies a dispatch failure.
type Kind int

const (
	// KindArgumentParsing covers any failure to match the raw arguments
	// against the grammar, including help and version requests.
	KindArgumentParsing Kind = iota + 1
	// KindUnknownCommand means no subcommand was given, or the selected name
	// has no registered command.
	KindUnknownCommand
	// KindIO is a failed write to the environment's sink.
	KindIO
	// KindRegistration is a rejected AddCommand call.
	KindRegistration
	// KindExecution is a command's own failure.
	KindExecution
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindArgumentParsing:
		return "argument parsing"
	case KindUnknownCommand:
		return "unknown command"
	case KindIO:
		return "io"
	case KindRegistration:
		return "registration"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// ErrHelpRequested is wrapped in a KindArgumentParsing error when the
// arguments asked for help or version output instead of a command.
var ErrHelpRequested = errors.New("help requested")

// Error is the error type returned by App.Run and App.AddCommand.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target with a message also
// requires the messages to be equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// ArgumentParsing wraps a grammar failure.
func ArgumentParsing(err error) *Error {
	return &Error{Kind: KindArgumentParsing, Err: err}
}

// UnknownCommand reports a missing or unregistered subcommand.
func UnknownCommand(msg string) *Error {
	return &Error{Kind: KindUnknownCommand, Message: msg}
}

// IO wraps a sink write failure. An error that already is a KindIO error is
// returned as is.
func IO(err error) *Error {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindIO {
		return e
	}
	return &Error{Kind: KindIO, Err: err}
}

// Registration reports a rejected AddCommand call.
func Registration(msg string) *Error {
	return &Error{Kind: KindRegistration, Message: msg}
}

// Execution wraps a command failure. Errors already carrying a Kind pass through.
func Execution(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindExecution, Err: err}
}

// Executionf formats a command failure.
func Executionf(format string, a ...any) error {
	return &Error{Kind: KindExecution, Err: fmt.Errorf(format, a...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
