package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-tally/internal/core/model"
)

type jsonRow struct {
	Timestamp int64       `json:"timestamp"`
	Platform  string      `json:"platform"`
	Account   string      `json:"account"`
	Metric    string      `json:"metric"`
	Value     interface{} `json:"value"`
	Graph     bool        `json:"graph"`
	Tags      string      `json:"tags"`
}

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

// Format writes the rows as an indented JSON array. Integer values stay numbers.
func (f *JSONFormatter) Format(rows []model.ExportRow) error {
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		var value interface{} = row.Value.Text
		if row.Value.Kind == model.KindInteger {
			value = row.Value.Int
		}
		out = append(out, jsonRow{
			Timestamp: row.Timestamp.Unix(),
			Platform:  row.Platform,
			Account:   row.Account,
			Metric:    row.Metric,
			Value:     value,
			Graph:     row.Graph,
			Tags:      row.Tags,
		})
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}
