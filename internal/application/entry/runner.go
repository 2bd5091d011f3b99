package entry

import (
	"errors"
	"os"
	"slices"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/data/scanner"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/util"
)

// Runner drives a Session over many series files.
type Runner struct {
	cfg     *config.Config
	session *Session
	printer *display.Printer
}

func NewRunner(cfg *config.Config, session *Session, printer *display.Printer) *Runner {
	return &Runner{cfg: cfg, session: session, printer: printer}
}

// Files expands paths into the sorted list of series files to visit. A path that does
// not exist but carries a series extension names a new series.
func (r *Runner) Files(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if _, ok := r.cfg.KindOf(path); ok {
				files = append(files, path)
				continue
			}
		}

		found, err := scanner.Expand([]string{path}, r.isSeries)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// RunAll runs a session for every file below paths. It stops at the first operational
// error; files saved before it keep their new records.
func (r *Runner) RunAll(paths []string) ([]Outcome, error) {
	files, err := r.Files(paths)
	if err != nil {
		return nil, err
	}
	util.LogInfof("Entering values for %d series", len(files))

	outcomes := make([]Outcome, 0, len(files))
	for i, file := range files {
		if i > 0 {
			r.printer.Println()
		}
		outcome, err := r.session.Run(file)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (r *Runner) isSeries(path string) bool {
	_, ok := r.cfg.KindOf(path)
	return ok
}
