package smshub

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Vendor responses are plaintext: a status marker, then colon-delimited
// fields. There is no JSON and no structured error channel, so parsing is
// prefix matching plus split-on-colon, one function per action. The
// fragility is the external contract; do not tighten it.

const (
	markerBalance = "ACCESS_BALANCE"
	markerNumber  = "ACCESS_NUMBER"
	markerOTP     = "STATUS_OK"
	markerCancel  = "ACCESS_CANCEL"
)

// parseBalance handles getBalance: "ACCESS_BALANCE:<float>".
func parseBalance(body string) (decimal.Decimal, error) {
	if !strings.HasPrefix(body, markerBalance) {
		return decimal.Zero, &UnexpectedResponseError{Action: "getBalance", Response: body}
	}
	fields := strings.Split(body, ":")
	if len(fields) < 2 {
		return decimal.Zero, &UnexpectedResponseError{Action: "getBalance", Response: body}
	}
	balance, err := decimal.NewFromString(fields[1])
	if err != nil {
		return decimal.Zero, &UnexpectedResponseError{Action: "getBalance", Response: body}
	}
	return balance, nil
}

// parseNumber handles getNumber: "ACCESS_NUMBER:<id>:<number>". Any other
// body, including the vendor's "NO_NUMBERS", is an unexpected response.
func parseNumber(body string) (id, number string, err error) {
	if !strings.HasPrefix(body, markerNumber) {
		return "", "", &UnexpectedResponseError{Action: "getNumber", Response: body}
	}
	fields := strings.Split(body, ":")
	if len(fields) < 3 || fields[1] == "" || fields[2] == "" {
		return "", "", &UnexpectedResponseError{Action: "getNumber", Response: body}
	}
	return fields[1], fields[2], nil
}

// parseStatus handles getStatus: "STATUS_OK:<otp>" carries a passcode.
// Every other body (STATUS_WAIT_CODE included) means no OTP yet, which is
// a normal state, never an error.
func parseStatus(body string) (otp string, ok bool) {
	if !strings.HasPrefix(body, markerOTP) {
		return "", false
	}
	fields := strings.Split(body, ":")
	if len(fields) < 2 || fields[1] == "" {
		return "", false
	}
	return fields[1], true
}

// parseCancel handles setStatus(8): "ACCESS_CANCEL" on success.
func parseCancel(body string) error {
	if !strings.HasPrefix(body, markerCancel) {
		return &UnexpectedResponseError{Action: "setStatus", Response: body}
	}
	return nil
}
