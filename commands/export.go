package commands

import (
	"fmt"
	"io"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/aggregator"
	"github.com/penwyp/go-tally/internal/data/listfile"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/presentation/formatter"
	"github.com/penwyp/go-tally/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportGraphs string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [paths...]",
	Short: "Merge series into one table with platform, account and metric columns",
	Long: `Merges the records of the given series (the data root by default) into one table
sorted by timestamp, platform, account, metric and value. Directories contribute their
integer series only; files given by name are exported whatever their kind.

Series whose root-relative path starts with a line of the graph list file are flagged
in the graph column. Records that fail to decode are skipped with a warning.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"Output file, '-' for stdout (default export_file from the config)")
	exportCmd.Flags().StringVar(&exportGraphs, "graphs", "",
		"Graph list file (default graph_list_file under the data root)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"Output format (csv, json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unsupported format %q (csv, json)", exportFormat)
	}

	graphFile := cfg.GraphListPath()
	if exportGraphs != "" {
		graphFile = expandPath(exportGraphs)
	}
	prefixes, err := listfile.Entries(graphFile)
	if err != nil {
		return err
	}

	stderr := display.NewPrinter(cmd.ErrOrStderr())
	agg := aggregator.NewAggregator(cfg, stderr.Warnf)
	rows, err := agg.Export(pathsOrRoot(args), prefixes)
	if err != nil {
		return err
	}

	output := exportOutput
	if output == "" {
		output = cfg.ExportFile
	}
	if output == "-" {
		return writeExport(cmd.OutOrStdout(), rows)
	}

	output = expandPath(output)
	if err := util.WriteFileAtomic(output, func(w io.Writer) error {
		return writeExport(w, rows)
	}); err != nil {
		return &model.PathError{Op: "write", Path: output, Err: err}
	}

	stats := agg.Stats()
	summary := fmt.Sprintf("exported %s rows from %s files to %s",
		util.FormatInteger(int64(stats.Rows)), util.FormatInteger(int64(stats.Files)), output)
	if stats.SkippedRecords > 0 || stats.SkippedFiles > 0 {
		summary += fmt.Sprintf(" (skipped %d records, %d files)", stats.SkippedRecords, stats.SkippedFiles)
	}
	display.NewPrinter(cmd.OutOrStdout()).Successf("%s", summary)
	return nil
}

func writeExport(w io.Writer, rows []model.ExportRow) error {
	if exportFormat == "json" {
		return formatter.NewJSONFormatter(w).Format(rows)
	}
	return formatter.NewCSVFormatter(w).Format(rows)
}
