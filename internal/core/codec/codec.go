// Package codec converts between series file rows and records.
package codec

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-tally/internal/core/model"
)

// ErrEmptyText is returned by ParseText for an empty value.
var ErrEmptyText = errors.New("value must not be empty")

// Decode turns the two fields of a row into a Record of the given kind.
func Decode(fields []string, kind model.Kind) (model.Record, error) {
	if len(fields) != 2 {
		return model.Record{}, malformed(fields, "expected 2 fields, got "+strconv.Itoa(len(fields)))
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return model.Record{}, malformed(fields, "timestamp is not an integer")
	}
	timestamp, err := ParseTimestamp(ts)
	if err != nil {
		return model.Record{}, malformed(fields, err.Error())
	}

	var value model.Value
	switch kind {
	case model.KindInteger:
		value, err = ParseInteger(fields[1])
		if err != nil {
			return model.Record{}, malformed(fields, "value is not an integer")
		}
	case model.KindString:
		value, err = ParseText(fields[1])
		if err != nil {
			return model.Record{}, malformed(fields, "value is empty")
		}
	default:
		return model.Record{}, malformed(fields, "unknown value kind "+kind.String())
	}

	return model.Record{Timestamp: timestamp, Value: value}, nil
}

// Encode is the inverse of Decode.
func Encode(r model.Record) []string {
	return []string{strconv.FormatInt(r.Timestamp.Unix(), 10), r.Value.String()}
}

// ParseTimestamp converts Unix seconds to a UTC instant, rejecting values outside years 1 to 9999.
func ParseTimestamp(sec int64) (time.Time, error) {
	if sec < model.MinTimestamp || sec > model.MaxTimestamp {
		return time.Time{}, errors.New("timestamp " + strconv.FormatInt(sec, 10) + " is out of range")
	}
	return time.Unix(sec, 0).UTC(), nil
}

// ParseInteger parses a decimal integer value.
func ParseInteger(s string) (model.Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return model.Value{}, err
	}
	return model.IntValue(n), nil
}

// ParseText accepts any non-empty string verbatim.
func ParseText(s string) (model.Value, error) {
	if s == "" {
		return model.Value{}, ErrEmptyText
	}
	return model.TextValue(s), nil
}

// ParseValue dispatches to the parser of kind. Surrounding blanks are trimmed for integers only.
func ParseValue(s string, kind model.Kind) (model.Value, error) {
	if kind == model.KindInteger {
		return ParseInteger(strings.TrimSpace(s))
	}
	return ParseText(s)
}

func malformed(fields []string, reason string) error {
	return &model.MalformedRecordError{Fields: fields, Reason: reason}
}
