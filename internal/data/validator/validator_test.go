package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(buf *bytes.Buffer) *Validator {
	return New(display.NewPrinter(buf), time.UTC)
}

func writeSeries(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tw", "alice", "followers.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCleanFile(t *testing.T) {
	var buf bytes.Buffer
	path := writeSeries(t, "100,5\n200,6\n300,1000\n")

	problems, err := newValidator(&buf).Validate(path, model.KindInteger, false)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Empty(t, buf.String(), "nothing is printed without emit")
}

func TestValidateNonMonotonic(t *testing.T) {
	var buf bytes.Buffer
	path := writeSeries(t, "100,5\n50,3\n")

	problems, err := newValidator(&buf).Validate(path, model.KindInteger, false)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, 2, problems[0].Line)
	assert.Contains(t, problems[0].Error(), "must be greater than")

	var nonMonotonic *model.NonMonotonicError
	require.ErrorAs(t, problems[0].Err, &nonMonotonic)
	assert.Equal(t, int64(100), nonMonotonic.Expected.Unix())
	assert.Equal(t, int64(50), nonMonotonic.Got.Unix())
}

func TestValidateBaselineSkipsBadRows(t *testing.T) {
	var buf bytes.Buffer
	// line 2 is malformed, line 3 goes backwards, line 4 must be compared with line 1.
	path := writeSeries(t, "100,1\nxyz,2\n90,3\n150,4\n150,5\n\n200,x\n300,7\n")

	problems, err := newValidator(&buf).Validate(path, model.KindInteger, false)
	require.NoError(t, err)

	lines := make([]int, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.Line)
	}
	assert.Equal(t, []int{2, 3, 5, 6, 7}, lines)

	var nonMonotonic *model.NonMonotonicError
	require.ErrorAs(t, problems[1].Err, &nonMonotonic)
	assert.Equal(t, int64(100), nonMonotonic.Expected.Unix(), "malformed rows do not advance the baseline")
	require.ErrorAs(t, problems[2].Err, &nonMonotonic)
	assert.Equal(t, int64(150), nonMonotonic.Expected.Unix())

	var malformed *model.MalformedRecordError
	assert.ErrorAs(t, problems[0].Err, &malformed)
	assert.ErrorAs(t, problems[3].Err, &malformed)
	assert.ErrorAs(t, problems[4].Err, &malformed)
}

func TestValidateFirstRecordAlwaysPasses(t *testing.T) {
	var buf bytes.Buffer
	path := writeSeries(t, "-62135596800,1\n")

	problems, err := newValidator(&buf).Validate(path, model.KindInteger, false)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestValidateEmitInterleavesOutput(t *testing.T) {
	var buf bytes.Buffer
	path := writeSeries(t, "1700000000,1234\n1699999999,1\n1700000060,hello\n")

	problems, err := newValidator(&buf).Validate(path, model.KindString, true)
	require.NoError(t, err)
	require.Len(t, problems, 1)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2023-11-14 22:13:20 UTC  1234", lines[0])
	assert.Equal(t, "line 2: timestamp 1699999999 must be greater than 1700000000", lines[1])
	assert.Equal(t, "2023-11-14 22:14:20 UTC  hello", lines[2])
}

func TestValidateEmitIntegerAlignment(t *testing.T) {
	var buf bytes.Buffer
	path := writeSeries(t, "1700000000,1234567\n")

	_, err := newValidator(&buf).Validate(path, model.KindInteger, true)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14 22:13:20 UTC        1,234,567\n", buf.String())
}

func TestValidateOperationalErrors(t *testing.T) {
	var buf bytes.Buffer
	v := newValidator(&buf)

	_, err := v.Validate(filepath.Join(t.TempDir(), "missing.csv"), model.KindInteger, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = v.Validate(t.TempDir(), model.KindInteger, false)
	assert.ErrorIs(t, err, model.ErrNotAFile)
}
