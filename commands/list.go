package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/penwyp/go-tally/internal/core/attributes"
	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/profile"
	"github.com/penwyp/go-tally/internal/data/scanner"
	"github.com/penwyp/go-tally/internal/data/series"
	"github.com/penwyp/go-tally/internal/data/validator"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/presentation/formatter"
	"github.com/penwyp/go-tally/internal/util"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [paths...]",
	Aliases: []string{"ls"},
	Short:   "Show every series with its profile and last value",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	files, err := scanner.Expand(pathsOrRoot(args), isSeries)
	if err != nil {
		return err
	}

	profiles := profile.NewLoader(cfg.ProfileFile)
	checker := validator.New(display.NewPrinter(io.Discard), cfg.Location())

	summaries := make([]formatter.SeriesSummary, 0, len(files))
	for _, path := range files {
		s, err := summarize(path, profiles, checker)
		if err != nil {
			return err
		}
		summaries = append(summaries, s)
	}

	if len(summaries) == 0 {
		display.NewPrinter(cmd.OutOrStdout()).Println("no series found")
		return nil
	}
	return formatter.NewTableFormatter(cmd.OutOrStdout(), cfg.Location()).Format(summaries)
}

func summarize(path string, profiles *profile.Loader, checker *validator.Validator) (formatter.SeriesSummary, error) {
	kind, _ := cfg.KindOf(path)
	s := formatter.SeriesSummary{Path: path, Series: path, Kind: kind.String()}

	if attrs, ok := attributes.Resolve(path, cfg.DataRoot); ok {
		s.Series = attrs.String()
	}

	prof, err := profiles.Load(attributes.AccountDir(path))
	var pathErr *model.PathError
	if errors.As(err, &pathErr) {
		return s, err
	}
	s.Name, s.URL = prof.Name, prof.URL

	rows, err := series.ReadRows(path)
	if err != nil {
		return s, err
	}
	for _, row := range rows {
		rec, err := series.DecodeRow(row, kind)
		if err != nil {
			continue
		}
		s.Records++
		s.LastUpdate = rec.Timestamp
		s.LastValue = rec.Value.String()
		if kind == model.KindInteger {
			s.LastValue = util.FormatInteger(rec.Value.Int)
		}
	}

	problems, err := checker.Validate(path, kind, false)
	if err != nil {
		return s, err
	}
	if len(problems) > 0 {
		s.Problem = fmt.Sprintf("%d problems, first on line %d", len(problems), problems[0].Line)
	}
	return s, nil
}
