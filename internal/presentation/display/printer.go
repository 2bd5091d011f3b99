// Package display prints user-facing output with terminal-aware styling.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the printer
type Styles struct {
	Title   lipgloss.Style
	Error   lipgloss.Style
	Warn    lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// Printer is the sink for every message shown to the user. Colors are only emitted
// when the underlying writer is a color-capable terminal.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out: w,
		styles: Styles{
			Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
			Error:   r.NewStyle().Foreground(lipgloss.Color("1")),
			Warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
			Success: r.NewStyle().Foreground(lipgloss.Color("2")),
			Muted:   r.NewStyle().Faint(true),
		},
	}
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Title prints a section heading.
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.out, p.styles.Title.Render(s))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Warn.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a confirmation line.
func (p *Printer) Successf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Muted styles s as secondary information without printing it.
func (p *Printer) Muted(s string) string {
	return p.styles.Muted.Render(s)
}
