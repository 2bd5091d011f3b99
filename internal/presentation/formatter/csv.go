package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-tally/internal/core/model"
)

// ExportHeader is the header row of export files.
var ExportHeader = []string{"timestamp", "platform", "account", "metric", "value", "graph", "tags"}

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// Format writes the header and one line per export row.
func (f *CSVFormatter) Format(rows []model.ExportRow) error {
	w := csv.NewWriter(f.w)

	if err := w.Write(ExportHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.Timestamp.Unix(), 10),
			row.Platform,
			row.Account,
			row.Metric,
			row.Value.String(),
			strconv.FormatBool(row.Graph),
			row.Tags,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
