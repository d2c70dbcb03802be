package session

import "github.com/smsgrab/smsgrab/internal/order"

// Severity classifies operator-facing messages.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Notifier receives presentation events. Implementations must be safe for
// concurrent use: the polling tick and the command handler both emit.
type Notifier interface {
	// OTPReceived fires once per newly observed passcode.
	OTPReceived(number, otp string)

	// OrdersChanged asks for a re-render of the full order listing.
	OrdersChanged(orders []order.Order)

	// Message shows a one-line status message to the operator.
	Message(text string, severity Severity)
}
