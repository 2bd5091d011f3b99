package entry

import (
	"errors"
	"fmt"
)

// ResultKind tells which variant a Result holds.
type ResultKind int

const (
	ResultValue ResultKind = iota
	ResultCancel
	ResultCommand
)

// Command is an in-band instruction typed instead of a value.
type Command int

const (
	NoCommand Command = iota
	// TimestampCommand asks to set the timestamp of the next value by hand.
	TimestampCommand
)

// TimestampToken is what the user types to issue TimestampCommand.
const TimestampToken = ":t"

// Result is the outcome of one input layer: a value, a cancellation or a command.
type Result[T any] struct {
	Kind    ResultKind
	Value   T
	Command Command
}

func valueResult[T any](v T) Result[T] {
	return Result[T]{Kind: ResultValue, Value: v}
}

func cancelResult[T any]() Result[T] {
	return Result[T]{Kind: ResultCancel}
}

// passThrough carries a cancellation or command across a change of value type.
func passThrough[T, U any](r Result[U]) Result[T] {
	return Result[T]{Kind: r.Kind, Command: r.Command}
}

// UnknownCommandError is returned for a ':' token that names no command.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Token, TimestampToken)
}

// ErrCommandNotComposable is returned when a command is typed while a command is in progress.
var ErrCommandNotComposable = errors.New("commands cannot be used while entering a timestamp")
