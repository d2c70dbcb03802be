// Package display renders session state to the operator's terminal:
// a full-screen listing of rented numbers plus the options menu,
// re-drawn after every state change.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/nyaruka/phonenumbers"

	"github.com/smsgrab/smsgrab/internal/cli/ui"
	"github.com/smsgrab/smsgrab/internal/order"
	"github.com/smsgrab/smsgrab/internal/session"
)

// Console implements session.Notifier. The polling tick and the command
// handler both emit notifications, so rendering is serialized with a
// mutex.
type Console struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
}

// NewConsole creates a Console writing to out. With interactive=true the
// caller has already decided the terminal supports it: each full render
// clears the screen and styles are forced to emit ANSI. Set
// interactive=false for tests and piped output.
func NewConsole(out io.Writer, interactive bool) *Console {
	return &Console{out: out, interactive: interactive}
}

// style binds s to the forced-ANSI renderer in interactive mode, so
// colors survive even though out is not the renderer lipgloss detected.
func (c *Console) style(s lipgloss.Style) lipgloss.Style {
	if c.interactive {
		return s.Renderer(ui.ForcedRenderer())
	}
	return s
}

// ShowTitle prints the startup banner.
func (c *Console) ShowTitle(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	title := c.style(ui.StyleBrandHeader).Render(ui.BrandEmoji + " SMSGrab " + version)
	sub := c.style(ui.StyleHint).Render("rent numbers, catch OTPs")
	fmt.Fprintln(c.out, c.style(ui.StyleBanner).Render(title+"\n"+sub))
}

// OTPReceived highlights a newly arrived passcode.
func (c *Console) OTPReceived(number, otp string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.style(ui.StyleSuccess).Render(fmt.Sprintf(" %s OTP RECEIVED: %s for number %s ", ui.SymbolCheck, otp, FormatNumber(number))))
}

// OrdersChanged re-renders the full listing and the options menu.
func (c *Console) OrdersChanged(orders []order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interactive {
		fmt.Fprint(c.out, "\x1b[2J\x1b[H")
	}

	fmt.Fprintln(c.out, c.style(ui.StyleBold).Render("Purchased Numbers:"))
	if len(orders) == 0 {
		fmt.Fprintln(c.out, c.style(ui.StyleDim).Render("No active numbers."))
	}
	for i, o := range orders {
		label := fmt.Sprintf("%s %s", c.style(ui.StyleBold).Render(fmt.Sprintf("Number %d:", i+1)), c.style(ui.StyleBlue).Render(FormatNumber(o.Number)))
		var status string
		box := ui.StyleBoxWaiting
		if o.HasOTP() {
			status = c.style(ui.StyleGreen).Render("OTP: " + o.OTP)
			box = ui.StyleBoxReady
		} else {
			status = c.style(ui.StyleYellow).Render("Waiting for OTP...")
		}
		fmt.Fprintln(c.out, c.style(box).Render(label+"\n"+status))
	}

	c.renderOptions()
}

// Message shows a one-line status message.
func (c *Console) Message(text string, severity session.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var style = ui.StyleBlue
	switch severity {
	case session.SeveritySuccess:
		style = ui.StyleSuccess
	case session.SeverityWarning:
		style = ui.StyleWarning
	case session.SeverityError:
		style = ui.StyleError
	}
	fmt.Fprintln(c.out, c.style(style).Render(text))
}

// Goodbye prints the exit message.
func (c *Console) Goodbye() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.style(ui.StyleGreen).Render("\nThank you for using SMSGrab. Goodbye!"))
}

func (c *Console) renderOptions() {
	fmt.Fprintln(c.out, c.style(ui.StyleBold).Render("\nOptions:"))
	fmt.Fprintln(c.out, c.style(ui.StyleGreen).Render("1")+"    "+ui.SymbolArrow+" Cancel all numbers and buy new ones")
	fmt.Fprintln(c.out, c.style(ui.StyleRed).Render("2")+"    "+ui.SymbolArrow+" Cancel all numbers and exit")
	fmt.Fprintln(c.out, c.style(ui.StyleYellow).Render("c[n]")+" "+ui.SymbolArrow+" "+c.style(ui.StyleDim).Render("Cancel specific number (e.g., c1 to cancel number 1)"))
	fmt.Fprintln(c.out, c.style(ui.StyleBoldCyan).Render("\n> Enter your choice:"))
}

// FormatNumber pretty-prints a vendor-supplied number for display.
// Vendors return bare digits; a '+' is assumed before parsing. Numbers
// libphonenumber cannot make sense of are shown as-is.
func FormatNumber(raw string) string {
	input := raw
	if !strings.HasPrefix(input, "+") {
		input = "+" + input
	}
	num, err := phonenumbers.Parse(input, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
