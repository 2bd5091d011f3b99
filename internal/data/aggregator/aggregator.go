package aggregator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/core/attributes"
	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/profile"
	"github.com/penwyp/go-tally/internal/data/scanner"
	"github.com/penwyp/go-tally/internal/data/series"
	"github.com/penwyp/go-tally/internal/util"
)

// WarnFunc receives recoverable problems met during an export.
type WarnFunc func(format string, args ...interface{})

// Stats summarizes an export run.
type Stats struct {
	Files          int
	Rows           int
	SkippedFiles   int
	SkippedRecords int
}

// Aggregator merges series files into one export table.
type Aggregator struct {
	cfg      *config.Config
	profiles *profile.Loader
	warn     WarnFunc
	stats    Stats
}

// NewAggregator creates an Aggregator for the data tree described by cfg.
// warn may be nil.
func NewAggregator(cfg *config.Config, warn WarnFunc) *Aggregator {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}
	return &Aggregator{
		cfg:      cfg,
		profiles: profile.NewLoader(cfg.ProfileFile),
		warn:     warn,
	}
}

// Stats returns the counters of the last Export call.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// Export builds the rows of every source. Directories are walked recursively and only
// integer series inside them are exported; files are exported whatever their kind.
// Records that fail to decode are skipped with a warning. The result is sorted by the
// full row tuple.
func (a *Aggregator) Export(sources []string, graphPrefixes []string) ([]model.ExportRow, error) {
	a.stats = Stats{}
	var rows []model.ExportRow

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, &model.PathError{Op: "stat", Path: source, Err: err}
		}

		files := []string{source}
		if info.IsDir() {
			files, err = scanner.NewFileScanner(source, a.isIntegerSeries).Scan()
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", source, err)
			}
		}

		for _, file := range files {
			fileRows, err := a.exportFile(file, graphPrefixes)
			if err != nil {
				return nil, err
			}
			rows = append(rows, fileRows...)
		}
	}

	slices.SortFunc(rows, model.ExportRow.Compare)
	a.stats.Rows = len(rows)

	util.LogInfof("Export finished: %d files, %d rows, %d skipped files, %d skipped records",
		a.stats.Files, a.stats.Rows, a.stats.SkippedFiles, a.stats.SkippedRecords)
	return rows, nil
}

func (a *Aggregator) exportFile(path string, graphPrefixes []string) ([]model.ExportRow, error) {
	kind, ok := a.cfg.KindOf(path)
	if !ok {
		return nil, &model.PathError{Op: "export", Path: path, Err: errors.New("unknown series extension")}
	}

	attrs, ok := attributes.Resolve(path, a.cfg.DataRoot)
	if !ok {
		a.stats.SkippedFiles++
		a.warn("skipping %s: not below %s as platform/account/metric", path, a.cfg.DataRoot)
		return nil, nil
	}

	prof, err := a.profiles.Load(attributes.AccountDir(path))
	if err != nil {
		var pathErr *model.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		a.warn("%v", err)
	}

	rows, err := series.ReadRows(path)
	if err != nil {
		return nil, err
	}

	rel, _ := attributes.RelativePath(path, a.cfg.DataRoot)
	graph := isGraphed(graphPrefixes, rel, filepath.ToSlash(path))
	tags := strings.Join(prof.Tags, " ")

	out := make([]model.ExportRow, 0, len(rows))
	for _, row := range rows {
		rec, err := series.DecodeRow(row, kind)
		if err != nil {
			a.stats.SkippedRecords++
			util.LogDebug("Skipped record", util.String("path", path), util.Int("line", row.Line), util.Err(err))
			a.warn("skipping %s:%d: %v", path, row.Line, err)
			continue
		}
		out = append(out, model.ExportRow{
			Timestamp: rec.Timestamp,
			Platform:  attrs.Platform,
			Account:   attrs.Account,
			Metric:    attrs.Metric,
			Value:     rec.Value,
			Graph:     graph,
			Tags:      tags,
		})
	}

	a.stats.Files++
	util.LogDebugf("Exported %d records from %s", len(out), path)
	return out, nil
}

func (a *Aggregator) isIntegerSeries(path string) bool {
	kind, ok := a.cfg.KindOf(path)
	return ok && kind == model.KindInteger
}

// isGraphed reports whether any of the path spellings starts with any prefix.
func isGraphed(prefixes []string, paths ...string) bool {
	for _, prefix := range prefixes {
		for _, p := range paths {
			if p != "" && strings.HasPrefix(p, prefix) {
				return true
			}
		}
	}
	return false
}
