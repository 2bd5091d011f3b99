package formatter

import (
	"time"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/util"
)

// ValueWidth is the column integers are right-aligned in.
const ValueWidth = 15

// FormatValue renders a value for people: integers with thousands separators
// right-aligned in ValueWidth columns, strings verbatim.
func FormatValue(v model.Value) string {
	if v.Kind == model.KindInteger {
		return util.PadLeft(util.FormatInteger(v.Int), ValueWidth)
	}
	return v.Text
}

// FormatRecord renders a record as "<timestamp>  <value>".
func FormatRecord(r model.Record, loc *time.Location) string {
	return util.FormatTimestamp(r.Timestamp, loc) + "  " + FormatValue(r.Value)
}
