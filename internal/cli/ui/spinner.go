package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StepSpinner animates the startup steps that wait on the vendor or the
// filesystem. Piped output (tests, CI) gets plain text instead of
// animation frames.
type StepSpinner struct {
	w     io.Writer
	s     *spinner.Spinner
	msg   string
	plain bool
}

// NewStepSpinner creates a spinner writing to w. Set plain=true when w
// is not an interactive terminal.
func NewStepSpinner(w io.Writer, plain bool) *StepSpinner {
	return &StepSpinner{w: w, plain: plain}
}

// Start begins a named step.
func (ss *StepSpinner) Start(msg string) {
	ss.msg = msg
	if ss.plain {
		fmt.Fprintf(ss.w, "%s %s", SymbolArrow, msg)
		return
	}
	ss.s = spinner.New(
		spinner.CharSets[11], // braille circle
		100*time.Millisecond,
		spinner.WithWriter(ss.w),
	)
	ss.s.Suffix = " " + msg
	ss.s.Start()
}

// Done ends the current step with a green check.
func (ss *StepSpinner) Done() {
	ss.finish(StyleSuccess.Render(SymbolCheck))
}

// Fail ends the current step with a red cross.
func (ss *StepSpinner) Fail() {
	ss.finish(StyleError.Render(SymbolCross))
}

func (ss *StepSpinner) finish(mark string) {
	if ss.plain {
		fmt.Fprintf(ss.w, " %s\n", mark)
		return
	}
	if ss.s != nil {
		ss.s.Stop()
		ss.s = nil
	}
	fmt.Fprintf(ss.w, "%s %s %s\n", SymbolArrow, ss.msg, mark)
}
