package commands

import (
	"os"

	"github.com/penwyp/go-tally/internal/application/entry"
	"github.com/penwyp/go-tally/internal/presentation/display"
	"github.com/penwyp/go-tally/internal/util"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add [paths...]",
	Aliases: []string{"enter"},
	Short:   "Interactively enter the next value of one or more series",
	Long: `Shows each series below the given paths (the data root by default) with its last
record and asks for the next value, twice, before appending it with the current time.

While entering a value:
  (blank line twice)  skip this series
  :t                  set the timestamp of the next value by hand
  Ctrl-D              skip this series

A path that does not exist yet but has a series extension starts a new series.`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	printer := display.NewPrinter(cmd.OutOrStdout())
	input := entry.NewInput(lineSource(cmd), printer)
	session := entry.NewSession(cfg, input, printer)
	runner := entry.NewRunner(cfg, session, printer)

	outcomes, err := runner.RunAll(pathsOrRoot(args))
	saved := 0
	for _, o := range outcomes {
		if o.Saved {
			saved++
		}
	}
	if len(outcomes) > 1 {
		printer.Println()
		printer.Println(printer.Muted(util.FormatInteger(int64(saved)) + " of " +
			util.FormatInteger(int64(len(outcomes))) + " series updated"))
	}
	return err
}

// lineSource reads from the command input, with line editing when it is a terminal.
func lineSource(cmd *cobra.Command) entry.LineSource {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return entry.NewLineSource(f, cmd.OutOrStdout())
	}
	return entry.NewReaderSource(in, cmd.OutOrStdout())
}
