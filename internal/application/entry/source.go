package entry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// LineSource reads one line of user input after showing prompt.
// It returns io.EOF when input is exhausted.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// ReaderSource reads lines from any reader, echoing prompts to a writer.
// It serves piped input and tests.
type ReaderSource struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewReaderSource(r io.Reader, out io.Writer) *ReaderSource {
	if out == nil {
		out = io.Discard
	}
	return &ReaderSource{reader: bufio.NewReader(r), out: out}
}

func (s *ReaderSource) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.reader.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalSource reads lines from an interactive terminal with line editing.
// The terminal is in raw mode only while a line is being read.
type TerminalSource struct {
	fd       int
	terminal *term.Terminal
}

func NewTerminalSource(in *os.File, out io.Writer) *TerminalSource {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &TerminalSource{
		fd:       int(in.Fd()),
		terminal: term.NewTerminal(rw, ""),
	}
}

func (s *TerminalSource) ReadLine(prompt string) (string, error) {
	state, err := term.MakeRaw(s.fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(s.fd, state)

	s.terminal.SetPrompt(prompt)
	return s.terminal.ReadLine()
}

// NewLineSource picks a TerminalSource when in is a terminal and a ReaderSource otherwise.
func NewLineSource(in *os.File, out io.Writer) LineSource {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminalSource(in, out)
	}
	return NewReaderSource(in, out)
}
