// Package series reads and writes time-series files: one CSV row per record,
// two fields per row, no header.
package series

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/penwyp/go-tally/internal/core/codec"
	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/util"
)

// Row is one record of a series file. Err is set when the record is not valid CSV.
type Row struct {
	Line   int
	Fields []string
	Err    error
}

// LineError ties a domain error to the 1-indexed line it was found on.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadRows returns every record of the file at path in order. Quoted fields may span
// lines; Line is the line a record starts on. Blank lines are kept as rows without
// fields, and a record that is not valid CSV is kept as one row carrying its raw text
// and the parse error.
func ReadRows(path string) ([]Row, error) {
	file, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &model.PathError{Op: "read", Path: path, Err: err}
	}
	lines := newLineIndex(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows []Row
	lastLine := 0
	for {
		start := r.InputOffset()
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		end := r.InputOffset()

		var line int
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, &model.PathError{Op: "read", Path: path, Err: err}
			}
			line = parseErr.StartLine
			fields = []string{strings.Trim(string(data[start:end]), "\r\n")}
		} else {
			line, _ = r.FieldPos(0)
		}

		// the reader skips empty lines silently
		for blank := lastLine + 1; blank < line; blank++ {
			rows = append(rows, Row{Line: blank, Fields: []string{}})
		}
		rows = append(rows, Row{Line: line, Fields: fields, Err: err})
		lastLine = lines.lineOf(end - 1)
	}
	for blank := lastLine + 1; blank <= lines.count(); blank++ {
		rows = append(rows, Row{Line: blank, Fields: []string{}})
	}

	util.LogDebugf("Read %d rows from %s", len(rows), path)
	return rows, nil
}

// lineIndex maps byte offsets of a file to 1-indexed line numbers.
type lineIndex []int64

func newLineIndex(data []byte) lineIndex {
	if len(data) == 0 {
		return nil
	}
	starts := lineIndex{0}
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			starts = append(starts, int64(i+1))
		}
	}
	return starts
}

func (idx lineIndex) lineOf(offset int64) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}

func (idx lineIndex) count() int {
	return len(idx)
}

// ReadRecords decodes the whole file, failing on the first row that does not decode.
func ReadRecords(path string, kind model.Kind) ([]model.Record, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := DecodeRow(row, kind)
		if err != nil {
			return nil, &LineError{Path: path, Line: row.Line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeRow decodes a row, reporting CSV syntax problems as malformed records.
func DecodeRow(row Row, kind model.Kind) (model.Record, error) {
	if row.Err != nil {
		return model.Record{}, &model.MalformedRecordError{Fields: row.Fields, Reason: row.Err.Error()}
	}
	return codec.Decode(row.Fields, kind)
}

// WriteRecords replaces the file at path with records, atomically.
func WriteRecords(path string, records []model.Record) error {
	err := util.WriteFileAtomic(path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		for _, rec := range records {
			if err := w.Write(codec.Encode(rec)); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if errors.Is(err, util.ErrNotRegular) {
		err = model.ErrNotAFile
	}
	if err != nil {
		return &model.PathError{Op: "write", Path: path, Err: err}
	}

	util.LogDebugf("Wrote %d records to %s", len(records), path)
	return nil
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &model.PathError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &model.PathError{Op: "open", Path: path, Err: model.ErrNotAFile}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.PathError{Op: "open", Path: path, Err: err}
	}
	return file, nil
}
