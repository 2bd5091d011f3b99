// Package entry records new values into series files interactively.
package entry

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/penwyp/go-tally/internal/config"
	"github.com/penwyp/go-tally/internal/core/attributes"
	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/data/profile"
	"github.com/penwyp/go-tally/internal/data/series"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/presentation/formatter"
	"github.com/penwyp/go-tally/internal/util"
)

const (
	valuePrompt            = "value: "
	confirmValuePrompt     = "confirm value: "
	timestampPrompt        = "timestamp: "
	confirmTimestampPrompt = "confirm timestamp: "
)

// Outcome describes what a session did to its file.
type Outcome struct {
	Path   string
	Saved  bool
	Record model.Record
}

// Session collects one new record for a series file.
type Session struct {
	cfg      *config.Config
	input    *Input
	printer  *display.Printer
	profiles *profile.Loader
	now      func() time.Time
	loc      *time.Location
}

func NewSession(cfg *config.Config, input *Input, printer *display.Printer) *Session {
	tp := util.GetTimeProvider()
	return &Session{
		cfg:      cfg,
		input:    input,
		printer:  printer,
		profiles: profile.NewLoader(cfg.ProfileFile),
		now:      tp.Now,
		loc:      tp.Location(),
	}
}

// Run shows the state of the series at path and asks for its next value. The file is
// rewritten only when a value is confirmed; a cancellation leaves it untouched.
func (s *Session) Run(path string) (Outcome, error) {
	outcome := Outcome{Path: path}

	kind, ok := s.cfg.KindOf(path)
	if !ok {
		return outcome, &model.PathError{Op: "enter", Path: path, Err: errors.New("unknown series extension")}
	}

	records, err := s.readRecords(path, kind)
	if err != nil {
		return outcome, err
	}

	var last *model.Record
	if len(records) > 0 {
		last = &records[len(records)-1]
	}
	if err := s.printHeader(path, last); err != nil {
		return outcome, err
	}

	convert := ValueConverter(kind)
	var override *time.Time
	for {
		res, err := Confirmed(s.input, valuePrompt, confirmValuePrompt, convert)
		if err != nil {
			return outcome, err
		}

		switch res.Kind {
		case ResultCancel:
			s.printer.Println(s.printer.Muted("skipped, nothing saved"))
			util.LogDebugf("Entry cancelled for %s", path)
			return outcome, nil
		case ResultCommand:
			ts, ok, err := s.readTimestamp(last)
			if err != nil {
				return outcome, err
			}
			if ok {
				override = &ts
				s.printer.Println(s.printer.Muted("next value will be saved at " + util.FormatTimestamp(ts, s.loc)))
			}
			continue
		}

		var ts time.Time
		if override != nil {
			ts = *override
			override = nil
		} else {
			ts = s.now().UTC().Truncate(time.Second)
			if last != nil && !ts.After(last.Timestamp) {
				s.printer.Errorf("current time %s is not after the last record at %s, use %s to set a timestamp",
					util.FormatTimestamp(ts, s.loc), util.FormatTimestamp(last.Timestamp, s.loc), TimestampToken)
				continue
			}
		}

		rec := model.Record{Timestamp: ts, Value: res.Value}
		records = append(records, rec)
		if err := series.WriteRecords(path, records); err != nil {
			return outcome, err
		}

		s.printConfirmation(rec, last)
		util.LogInfo("Saved record", util.String("path", path), util.String("value", rec.Value.String()),
			util.Int("records", len(records)))

		outcome.Saved = true
		outcome.Record = rec
		return outcome, nil
	}
}

// readRecords loads the existing records, refusing files that are not fully valid.
// A file that does not exist yet is an empty series.
func (s *Session) readRecords(path string, kind model.Kind) ([]model.Record, error) {
	records, err := series.ReadRecords(path, kind)
	if errors.Is(err, os.ErrNotExist) {
		util.LogDebugf("Starting new series %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("refusing to edit %s: %w", path, err)
	}

	for i := 1; i < len(records); i++ {
		if !records[i].Timestamp.After(records[i-1].Timestamp) {
			lineErr := &series.LineError{
				Path: path,
				Line: i + 1,
				Err:  &model.NonMonotonicError{Got: records[i].Timestamp, Expected: records[i-1].Timestamp},
			}
			return nil, fmt.Errorf("refusing to edit %s: %w", path, lineErr)
		}
	}
	return records, nil
}

func (s *Session) printHeader(path string, last *model.Record) error {
	attrs, ok := attributes.Resolve(path, s.cfg.DataRoot)
	if ok {
		s.printer.Title(attrs.String())
	} else {
		s.printer.Title(path)
	}

	prof, err := s.profiles.Load(attributes.AccountDir(path))
	if err != nil {
		var pathErr *model.PathError
		if errors.As(err, &pathErr) {
			return err
		}
		s.printer.Warnf("%v", err)
	}
	if prof.Name != "" {
		s.printer.Printf("name: %s\n", prof.Name)
	}
	if prof.URL != "" {
		s.printer.Printf("url:  %s\n", util.DisplayURL(prof.URL))
	}

	if last == nil {
		s.printer.Println(s.printer.Muted("no records yet"))
		return nil
	}
	s.printer.Printf("last: %s %s\n", formatter.FormatRecord(*last, s.loc),
		s.printer.Muted("("+util.FormatAge(last.Timestamp, s.now())+")"))
	return nil
}

// readTimestamp runs the timestamp sub-session. ok is false when it was cancelled.
func (s *Session) readTimestamp(last *model.Record) (ts time.Time, ok bool, err error) {
	var after *time.Time
	if last != nil {
		after = &last.Timestamp
	}
	convert := TimestampConverter(s.cfg.TimestampFormats, s.loc, after)

	res, err := Confirmed(s.input, timestampPrompt, confirmTimestampPrompt, convert)
	if err != nil {
		return time.Time{}, false, err
	}
	switch res.Kind {
	case ResultCommand:
		return time.Time{}, false, ErrCommandNotComposable
	case ResultCancel:
		return time.Time{}, false, nil
	}
	return res.Value, true, nil
}

func (s *Session) printConfirmation(rec model.Record, last *model.Record) {
	line := "saved " + formatter.FormatRecord(rec, s.loc)
	if rec.Value.Kind == model.KindInteger && last != nil && last.Value.Kind == model.KindInteger {
		line += " (" + util.FormatDelta(rec.Value.Int-last.Value.Int) + ")"
	}
	s.printer.Successf("%s", line)
}
