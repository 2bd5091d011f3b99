// Package validator checks series files row by row without stopping at the first problem.
package validator

import (
	"fmt"
	"time"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/series"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/presentation/formatter"
	"github.com/penwyp/go-tally/internal/util"
)

// LineError is a domain error found on a 1-indexed line.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Validator validates series files and optionally prints their content.
type Validator struct {
	printer  *display.Printer
	location *time.Location
}

// New creates a validator printing through printer, rendering times in loc.
func New(printer *display.Printer, loc *time.Location) *Validator {
	return &Validator{printer: printer, location: loc}
}

// Validate reads every row of path and returns the problems found, in file order.
// A row that fails to decode, or whose timestamp is not after the last valid one,
// is reported and excluded from later ordering checks. When emit is set, valid records
// and errors are printed as they are met. The returned error is operational only.
func (v *Validator) Validate(path string, kind model.Kind, emit bool) ([]LineError, error) {
	rows, err := series.ReadRows(path)
	if err != nil {
		return nil, err
	}

	var (
		problems    []LineError
		baseline    time.Time
		hasBaseline bool
	)

	for _, row := range rows {
		rec, err := series.DecodeRow(row, kind)
		if err == nil && hasBaseline && !rec.Timestamp.After(baseline) {
			err = &model.NonMonotonicError{Got: rec.Timestamp, Expected: baseline}
		}

		if err != nil {
			problem := LineError{Line: row.Line, Err: err}
			problems = append(problems, problem)
			if emit {
				v.printer.Errorf("%s", problem.Error())
			}
			continue
		}

		baseline, hasBaseline = rec.Timestamp, true
		if emit {
			v.printer.Println(formatter.FormatRecord(rec, v.location))
		}
	}

	util.LogDebugf("Validated %s: %d rows, %d problems", path, len(rows), len(problems))
	return problems, nil
}
