package model

import (
	"cmp"
	"strconv"
	"strings"
	"time"
)

// Kind is the value type stored in a series file, chosen by its extension.
type Kind int

const (
	KindInteger Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value holds either an integer or a non-empty string, tagged with its kind.
type Value struct {
	Kind Kind
	Int  int64
	Text string
}

// IntValue wraps n as an integer value.
func IntValue(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// TextValue wraps s as a string value.
func TextValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// String returns the serialized form of the value.
func (v Value) String() string {
	if v.Kind == KindInteger {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Text
}

// Compare orders integers numerically, strings lexically and integers before strings.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		return cmp.Compare(v.Kind, o.Kind)
	}
	if v.Kind == KindInteger {
		return cmp.Compare(v.Int, o.Int)
	}
	return strings.Compare(v.Text, o.Text)
}

// Record is one (timestamp, value) pair of a series file.
type Record struct {
	Timestamp time.Time
	Value     Value
}

// Attributes locate a series in the platform/account/metric taxonomy.
type Attributes struct {
	Platform string
	Account  string
	Metric   string
}

func (a Attributes) String() string {
	return a.Platform + "/" + a.Account + "/" + a.Metric
}

// Profile is the optional metadata attached to an account directory.
type Profile struct {
	Name string   `json:"name,omitempty"`
	URL  string   `json:"url,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

// ExportRow is one record of the consolidated export table.
type ExportRow struct {
	Timestamp time.Time
	Platform  string
	Account   string
	Metric    string
	Value     Value
	Graph     bool
	Tags      string
}

// Compare orders rows by their full tuple, timestamp first.
func (r ExportRow) Compare(o ExportRow) int {
	if c := r.Timestamp.Compare(o.Timestamp); c != 0 {
		return c
	}
	if c := strings.Compare(r.Platform, o.Platform); c != 0 {
		return c
	}
	if c := strings.Compare(r.Account, o.Account); c != 0 {
		return c
	}
	if c := strings.Compare(r.Metric, o.Metric); c != 0 {
		return c
	}
	if c := r.Value.Compare(o.Value); c != 0 {
		return c
	}
	if r.Graph != o.Graph {
		if r.Graph {
			return 1
		}
		return -1
	}
	return strings.Compare(r.Tags, o.Tags)
}
