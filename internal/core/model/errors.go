package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotAFile is returned when a path that must name a regular file does not.
var ErrNotAFile = errors.New("not a file")

// MalformedRecordError reports a row that cannot be decoded into a Record.
type MalformedRecordError struct {
	Fields []string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", strings.Join(e.Fields, ","), e.Reason)
}

// NonMonotonicError reports a timestamp that does not advance past the previous valid one.
type NonMonotonicError struct {
	Got      time.Time
	Expected time.Time
}

func (e *NonMonotonicError) Error() string {
	return fmt.Sprintf("timestamp %d must be greater than %d", e.Got.Unix(), e.Expected.Unix())
}

// PathError represents an operational failure on a series or metadata file
type PathError struct {
	Op   string // "open", "read", "write", "stat"
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
