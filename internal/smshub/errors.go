package smshub

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: connection errors and
// request timeouts. The vendor was never reached, or never answered.
var ErrUnavailable = errors.New("smshub: vendor unavailable")

// UnexpectedResponseError is returned when the vendor answered but the
// body does not match the success grammar for the action. The raw body is
// kept verbatim for the operator log.
type UnexpectedResponseError struct {
	Action   string
	Response string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("smshub: %s: unexpected response %q", e.Action, e.Response)
}
