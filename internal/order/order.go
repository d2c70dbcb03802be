// Package order holds the in-memory state of a rental session: the
// orders acquired from the vendor and the OTPs observed for them.
package order

// Order is a single rented virtual phone number. ID and Number are
// vendor-assigned and immutable; OTP is empty until a passcode arrives
// and is never cleared afterwards except by removing the order.
type Order struct {
	ID     string
	Number string
	OTP    string
}

// HasOTP reports whether a passcode has been observed for this order.
func (o Order) HasOTP() bool {
	return o.OTP != ""
}
