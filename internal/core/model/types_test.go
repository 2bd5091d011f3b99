package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"integers ascending", IntValue(1), IntValue(2), -1},
		{"integers equal", IntValue(7), IntValue(7), 0},
		{"negative before positive", IntValue(-5), IntValue(3), -1},
		{"strings lexical", TextValue("b"), TextValue("a"), 1},
		{"integer before string", IntValue(100), TextValue("1"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "-42", IntValue(-42).String())
	assert.Equal(t, "went live", TextValue("went live").String())
}

func TestExportRowCompare(t *testing.T) {
	ts := time.Unix(1000, 0).UTC()
	base := ExportRow{Timestamp: ts, Platform: "tw", Account: "alice", Metric: "a", Value: IntValue(1)}

	later := base
	later.Timestamp = ts.Add(time.Second)
	assert.Equal(t, -1, base.Compare(later), "timestamp is compared first")

	otherMetric := base
	otherMetric.Metric = "b"
	assert.Equal(t, -1, base.Compare(otherMetric))

	otherPlatform := base
	otherPlatform.Platform = "yt"
	otherPlatform.Metric = "0"
	assert.Equal(t, -1, base.Compare(otherPlatform), "platform wins over metric")

	bigger := base
	bigger.Value = IntValue(2)
	assert.Equal(t, -1, base.Compare(bigger))

	graphed := base
	graphed.Graph = true
	assert.Equal(t, -1, base.Compare(graphed))
	assert.Equal(t, 0, base.Compare(base))
}

func TestErrorsMessages(t *testing.T) {
	err := &NonMonotonicError{Got: time.Unix(50, 0), Expected: time.Unix(100, 0)}
	assert.Equal(t, "timestamp 50 must be greater than 100", err.Error())

	malformed := &MalformedRecordError{Fields: []string{"abc", "5"}, Reason: "timestamp is not an integer"}
	assert.Contains(t, malformed.Error(), "timestamp is not an integer")
	assert.Contains(t, malformed.Error(), "abc,5")
}
