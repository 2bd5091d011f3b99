package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/penwyp/go-tally/internal/data/scanner"
	"github.com/penwyp/go-tally/internal/data/validator"
	"github.com/penwyp/go-tally/internal/data/watcher"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/util"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned when validation found at least one problem.
var ErrValidationFailed = errors.New("validation failed")

var (
	validatePrint bool
	validateWatch bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Check series files for malformed records and out-of-order timestamps",
	Long: `Checks every series file below the given paths (the data root by default).
Each row must hold an integer Unix timestamp and a value of the kind implied by the
file extension, and timestamps must strictly increase. Every problem is reported;
a bad row never stops the check.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&validatePrint, "print", "p", false,
		"Print every valid record while checking")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false,
		"Keep watching and re-validate files as they change")
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := pathsOrRoot(args)
	files, err := scanner.Expand(paths, isSeries)
	if err != nil {
		return err
	}

	printer := display.NewPrinter(cmd.OutOrStdout())
	v := validator.New(printer, cfg.Location())

	reports, err := v.ValidateFiles(files, cfg.KindOf, validatePrint)
	if err != nil {
		return err
	}
	problems := validator.CountProblems(reports)
	printSummary(printer, len(reports), problems)

	if validateWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchAndValidate(ctx, paths, v, printer)
	}

	if problems > 0 {
		return ErrValidationFailed
	}
	return nil
}

func printSummary(printer *display.Printer, files, problems int) {
	if problems == 0 {
		printer.Successf("%d files checked, no problems", files)
		return
	}
	printer.Errorf("%d files checked, %d problems", files, problems)
}

// watchAndValidate re-validates each changed series file until ctx is done.
func watchAndValidate(ctx context.Context, paths []string, v *validator.Validator, printer *display.Printer) error {
	fw, err := watcher.NewFileWatcher(paths, isSeries)
	if err != nil {
		return err
	}
	defer fw.Close()

	printer.Println(printer.Muted("watching for changes, press Ctrl-C to stop"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if _, err := os.Stat(ev.Path); err != nil {
				continue
			}

			util.LogDebugf("Re-validating %s after %s", ev.Path, ev.Operation)
			reports, err := v.ValidateFiles([]string{ev.Path}, cfg.KindOf, validatePrint)
			if err != nil {
				printer.Errorf("%v", err)
				continue
			}
			printSummary(printer, len(reports), validator.CountProblems(reports))
		}
	}
}
