// Package listfile reads plain text list files such as the graph list.
package listfile

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/penwyp/go-tally/internal/core/model"
)

// Lines returns every line of the file at path, verbatim, without terminators.
func Lines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.PathError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, &model.PathError{Op: "read", Path: path, Err: err}
	}
	return lines, nil
}

// Entries returns the trimmed, non-empty lines of path that are not "#" comments.
// A missing file is an empty list.
func Entries(path string) ([]string, error) {
	lines, err := Lines(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}
