package entry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/series"
	"github.com/penwyp/go-tally/internal/data/validator"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg     *config.Config
	root    string
	out     *bytes.Buffer
	printer *display.Printer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.DataRoot = root
	out := &bytes.Buffer{}
	return &fixture{cfg: cfg, root: root, out: out, printer: display.NewPrinter(out)}
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (f *fixture) session(now int64, lines ...string) *Session {
	in, _ := scripted(lines...)
	in.printer = f.printer
	s := NewSession(f.cfg, in, f.printer)
	s.now = func() time.Time { return time.Unix(now, 0).UTC() }
	s.loc = time.UTC
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSessionAppendsRecord(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n200,20\n300,30\n")
	f.write(t, "tw/alice/profile.json", `{"name": "Alice", "url": "https://www.example.com/alice/"}`)

	outcome, err := f.session(1000, "1042", "1042").Run(path)
	require.NoError(t, err)
	assert.True(t, outcome.Saved)
	assert.Equal(t, model.Record{Timestamp: time.Unix(1000, 0).UTC(), Value: model.IntValue(1042)}, outcome.Record)

	assert.Equal(t, "100,10\n200,20\n300,30\n1000,1042\n", readFile(t, path))

	errs, err := validator.New(display.NewPrinter(&bytes.Buffer{}), time.UTC).Validate(path, model.KindInteger, false)
	require.NoError(t, err)
	assert.Empty(t, errs)
	records, err := series.ReadRecords(path, model.KindInteger)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	output := f.out.String()
	assert.Contains(t, output, "tw/alice/followers")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "example.com/alice")
	assert.Contains(t, output, "(+1,012)")
}

func TestSessionCancelLeavesFileUntouched(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")
	info, err := os.Stat(path)
	require.NoError(t, err)

	outcome, err := f.session(1000, "", "").Run(path)
	require.NoError(t, err)
	assert.False(t, outcome.Saved)
	assert.Equal(t, "100,10\n", readFile(t, path))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestSessionEOFIsCancel(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	outcome, err := f.session(1000, "5").Run(path)
	require.NoError(t, err)
	assert.False(t, outcome.Saved)
	assert.Equal(t, "100,10\n", readFile(t, path))
}

func TestSessionTimestampOverride(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	outcome, err := f.session(1000, ":t", "500", "500", "7", "7").Run(path)
	require.NoError(t, err)
	require.True(t, outcome.Saved)
	assert.Equal(t, int64(500), outcome.Record.Timestamp.Unix())
	assert.Equal(t, "100,10\n500,7\n", readFile(t, path))
}

func TestSessionTimestampRejectsPast(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	outcome, err := f.session(1000, ":t", "50", "150", "150", "7", "7").Run(path)
	require.NoError(t, err)
	assert.Equal(t, int64(150), outcome.Record.Timestamp.Unix())
	assert.Contains(t, f.out.String(), "timestamp 50 must be greater than 100")
}

func TestSessionTimestampCancelReturnsToValue(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	outcome, err := f.session(1000, ":t", "", "", "7", "7").Run(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), outcome.Record.Timestamp.Unix())
}

func TestSessionCommandInsideTimestamp(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	_, err := f.session(1000, ":t", ":t").Run(path)
	assert.ErrorIs(t, err, ErrCommandNotComposable)
	assert.Equal(t, "100,10\n", readFile(t, path))
}

func TestSessionUnknownCommand(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n")

	_, err := f.session(1000, ":q").Run(path)
	var unknown *UnknownCommandError
	assert.ErrorAs(t, err, &unknown)
}

func TestSessionClockNotAfterLastRecord(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/followers.csv", "100,10\n2000,20\n")

	outcome, err := f.session(1000, "7", "7", ":t", "3000", "3000", "8", "8").Run(path)
	require.NoError(t, err)
	assert.Equal(t, model.IntValue(8), outcome.Record.Value)
	assert.Equal(t, int64(3000), outcome.Record.Timestamp.Unix())
	assert.Contains(t, f.out.String(), "is not after the last record")
}

func TestSessionNewStringSeries(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "tw", "alice", "notes.journal")

	outcome, err := f.session(1000, "first, entry", "first, entry").Run(path)
	require.NoError(t, err)
	require.True(t, outcome.Saved)
	assert.Equal(t, "1000,\"first, entry\"\n", readFile(t, path))
	assert.Contains(t, f.out.String(), "no records yet")
	assert.NotContains(t, f.out.String(), "(+")
}

func TestSessionRefusesInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "100,10\nbad\n"},
		{"non monotonic", "200,10\n100,20\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			path := f.write(t, "tw/alice/followers.csv", tt.content)

			_, err := f.session(1000, "7", "7").Run(path)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "refusing to edit"))
			assert.Equal(t, tt.content, readFile(t, path))
		})
	}
}

func TestSessionUnknownExtension(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "tw/alice/notes.txt", "")

	_, err := f.session(1000).Run(path)
	var pathErr *model.PathError
	assert.ErrorAs(t, err, &pathErr)
}
