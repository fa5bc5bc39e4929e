package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/spherical/question-splitter/internal/domain"
)

// UI writes results to out and progress and errors to errOut.
type UI struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool

	bar     *ProgressBar
	spinner *Spinner
}

// New creates a UI on stdout and stderr. Progress rendering is disabled when
// interactive is false.
func New(interactive, noColor bool) *UI {
	if noColor {
		color.NoColor = true
	}
	return NewWithWriters(os.Stdout, os.Stderr, interactive)
}

// NewWithWriters creates a UI over explicit writers.
func NewWithWriters(out, errOut io.Writer, interactive bool) *UI {
	return &UI{out: out, errOut: errOut, interactive: interactive}
}

// PageProgress reports extraction progress. It matches source.ProgressFunc.
func (u *UI) PageProgress(page, total int) {
	if !u.interactive {
		return
	}
	if u.bar == nil {
		u.bar = NewProgressBar(u.errOut, int64(total), "Extracting")
	}
	u.bar.Set(int64(page))
	if page >= total {
		u.bar.Finish()
		u.bar = nil
	}
}

// HandleEvent renders pipeline events. It matches domain.EventHandler.
func (u *UI) HandleEvent(e domain.StreamEvent) {
	if !u.interactive {
		return
	}
	switch e.Type {
	case domain.EventSinkStarted:
		u.stopSpinner()
		u.spinner = NewSpinner(u.errOut, fmt.Sprintf("Writing %v output", e.Payload))
		u.spinner.Start()
	case domain.EventSinkCompleted, domain.EventError, domain.EventComplete:
		u.stopSpinner()
	}
}

func (u *UI) stopSpinner() {
	if u.spinner != nil {
		u.spinner.Stop()
		u.spinner = nil
	}
}

// Written prints the per-category text output line.
func (u *UI) Written(n int, c domain.Category, path string) {
	fmt.Fprintf(u.out, "Written %d %s questions to %s\n", n, c, path)
}

// Saved prints the database output line.
func (u *UI) Saved(n int, driver string) {
	fmt.Fprintf(u.out, "Saved %d questions to %s database\n", n, driver)
}

// Warning prints a warning to errOut.
func (u *UI) Warning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(u.errOut, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error message to errOut.
func (u *UI) Error(format string, args ...interface{}) {
	u.stopSpinner()
	color.New(color.FgRed).Fprintf(u.errOut, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Success prints a success message to out.
func (u *UI) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(u.out, "✓ %s\n", fmt.Sprintf(format, args...))
}
