package validator

import (
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-tally/internal/core/model"
)

// KindFunc maps a path to the value kind of the series stored in it.
type KindFunc func(path string) (model.Kind, bool)

// FileReport holds the problems of one validated file.
type FileReport struct {
	Path     string
	Kind     model.Kind
	Problems []LineError
}

// ValidateFiles validates each file in order. Problems are printed as
// "path:line: error" unless emit is set, in which case every file is printed in
// full under a title. Unknown extensions and unreadable files stop the run.
func (v *Validator) ValidateFiles(files []string, kindOf KindFunc, emit bool) ([]FileReport, error) {
	reports := make([]FileReport, 0, len(files))
	for _, path := range files {
		kind, ok := kindOf(path)
		if !ok {
			return reports, &model.PathError{Op: "validate", Path: path, Err: fmt.Errorf("unknown series extension %q", filepath.Ext(path))}
		}

		if emit {
			v.printer.Title(path)
		}
		problems, err := v.Validate(path, kind, emit)
		if err != nil {
			return reports, err
		}
		if !emit {
			for _, p := range problems {
				v.printer.Errorf("%s:%d: %v", path, p.Line, p.Err)
			}
		}
		reports = append(reports, FileReport{Path: path, Kind: kind, Problems: problems})
	}
	return reports, nil
}

// CountProblems sums the problems of all reports.
func CountProblems(reports []FileReport) int {
	n := 0
	for _, r := range reports {
		n += len(r.Problems)
	}
	return n
}
