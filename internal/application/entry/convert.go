package entry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/core/codec"
	"github.com/penwyp/go-tally/internal/core/model"
)

// ValueConverter returns the parser for values of kind.
func ValueConverter(kind model.Kind) func(string) (model.Value, error) {
	return func(s string) (model.Value, error) {
		v, err := codec.ParseValue(s, kind)
		if err != nil && kind == model.KindInteger {
			return model.Value{}, fmt.Errorf("%q is not an integer", s)
		}
		return v, err
	}
}

// TimestampConverter returns a parser trying formats in order. A format equal to
// config.EpochFormat reads Unix seconds; the others are strftime patterns interpreted
// in loc. When after is not nil the result must be strictly later than it.
func TimestampConverter(formats []string, loc *time.Location, after *time.Time) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		s = strings.TrimSpace(s)
		t, err := parseTimestamp(s, formats, loc)
		if err != nil {
			return time.Time{}, err
		}

		ts, err := codec.ParseTimestamp(t.Unix())
		if err != nil {
			return time.Time{}, err
		}
		if after != nil && !ts.After(*after) {
			return time.Time{}, &model.NonMonotonicError{Got: ts, Expected: *after}
		}
		return ts, nil
	}
}

// parseTimestamp tries each format in turn. A strftime match whose fields were
// normalized (2024-02-30, or a wall time skipped by a DST change) is rejected.
func parseTimestamp(s string, formats []string, loc *time.Location) (time.Time, error) {
	for _, format := range formats {
		if format == config.EpochFormat {
			sec, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				return time.Unix(sec, 0), nil
			}
			continue
		}
		t, err := timefmt.ParseInLocation(s, format, loc)
		if err != nil {
			continue
		}
		if timefmt.Format(t, format) != s {
			return time.Time{}, fmt.Errorf("%q is not a valid date and time (format %s)", s, format)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q matches none of the formats %s", s, strings.Join(formats, ", "))
}
