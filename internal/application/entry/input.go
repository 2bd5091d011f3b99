package entry

import (
	"errors"
	"io"
	"strings"

	"github.com/penwyp/go-tally/internal/presentation/display"
)

// SkipPrompt is shown after a first empty line.
const SkipPrompt = "enter blank again to skip or a value to continue: "

// Input layers prompting, skipping, command parsing, conversion and confirmation
// over a LineSource. Conversion errors are reported through the printer.
type Input struct {
	source  LineSource
	printer *display.Printer
}

func NewInput(source LineSource, printer *display.Printer) *Input {
	return &Input{source: source, printer: printer}
}

// Raw reads one line. End of input is a cancellation.
func (in *Input) Raw(prompt string) (Result[string], error) {
	line, err := in.source.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return cancelResult[string](), nil
	}
	if err != nil {
		return Result[string]{}, err
	}
	return valueResult(line), nil
}

// Optional reads a line where an empty answer, given twice, skips the question.
func (in *Input) Optional(prompt string) (Result[string], error) {
	r, err := in.Raw(prompt)
	if err != nil || r.Kind != ResultValue || r.Value != "" {
		return r, err
	}

	r, err = in.Raw(SkipPrompt)
	if err != nil || r.Kind != ResultValue {
		return r, err
	}
	if r.Value == "" {
		return cancelResult[string](), nil
	}
	return r, nil
}

// Command reads an optional line and interprets ':' tokens as commands.
func (in *Input) Command(prompt string) (Result[string], error) {
	r, err := in.Optional(prompt)
	if err != nil || r.Kind != ResultValue {
		return r, err
	}

	token := strings.TrimSpace(r.Value)
	if !strings.HasPrefix(token, ":") {
		return r, nil
	}
	if token == TimestampToken {
		return Result[string]{Kind: ResultCommand, Command: TimestampCommand}, nil
	}
	return Result[string]{}, &UnknownCommandError{Token: token}
}

// Validated reads until convert accepts the input, printing each rejection.
// Cancellations and commands are returned unconverted.
func Validated[T any](in *Input, prompt string, convert func(string) (T, error)) (Result[T], error) {
	for {
		r, err := in.Command(prompt)
		if err != nil {
			return Result[T]{}, err
		}
		if r.Kind != ResultValue {
			return passThrough[T](r), nil
		}

		v, err := convert(r.Value)
		if err != nil {
			in.printer.Errorf("invalid input: %v", err)
			continue
		}
		return valueResult(v), nil
	}
}

// Confirmed reads a value, then asks for it again until two consecutive answers agree.
// A disagreeing answer becomes the value to confirm. Cancellations and commands end
// the exchange immediately.
func Confirmed[T comparable](in *Input, prompt, confirmPrompt string, convert func(string) (T, error)) (Result[T], error) {
	first, err := Validated(in, prompt, convert)
	if err != nil || first.Kind != ResultValue {
		return first, err
	}

	for {
		next, err := Validated(in, confirmPrompt, convert)
		if err != nil || next.Kind != ResultValue {
			return next, err
		}
		if next.Value == first.Value {
			return next, nil
		}
		in.printer.Warnf("values do not match, confirm the last one or enter another")
		first = next
	}
}
