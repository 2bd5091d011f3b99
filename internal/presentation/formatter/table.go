package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-tally/internal/util"
)

type TableFormatter struct {
	w        io.Writer
	headers  []string
	location *time.Location
}

func NewTableFormatter(w io.Writer, loc *time.Location) *TableFormatter {
	return &TableFormatter{
		w:        w,
		headers:  []string{"Series", "Kind", "Name", "URL", "Records", "Last", "Updated"},
		location: loc,
	}
}

// Format prints the series listing as a bordered table.
func (f *TableFormatter) Format(data []SeriesSummary) error {
	rows := make([][]string, 0, len(data))
	for _, s := range data {
		rows = append(rows, f.cells(s))
	}

	widths := f.calculateColumnWidths(rows)

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, row := range rows {
		f.writeRow(&b, row, widths)
	}
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *TableFormatter) cells(s SeriesSummary) []string {
	last, updated := s.LastValue, ""
	if !s.LastUpdate.IsZero() {
		updated = util.FormatTimestamp(s.LastUpdate, f.location)
	}
	if s.Problem != "" {
		last, updated = "! "+s.Problem, ""
	}
	return []string{
		s.Series,
		s.Kind,
		s.Name,
		util.DisplayURL(s.URL),
		strconv.Itoa(s.Records),
		last,
		updated,
	}
}

// calculateColumnWidths determines the display width of each column
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeBorder writes table borders (top, middle, bottom)
func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right + "\n")
}

// writeRow writes one row; the Records column is right-aligned.
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		cell := util.PadRight(value, widths[i])
		if i == 4 {
			cell = util.PadLeft(value, widths[i])
		}
		fmt.Fprintf(b, " %s │", cell)
	}
	b.WriteString("\n")
}
