// Package session runs one interactive rental session: the initial
// purchase batch, the OTP polling loop, and the operator command surface.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsgrab/smsgrab/internal/order"
)

var (
	// ErrBalanceUnavailable ends the session: no purchase is safe without
	// a confirmed balance.
	ErrBalanceUnavailable = errors.New("session: could not retrieve balance")

	// ErrInsufficientBalance ends the session: the balance does not cover
	// even one number at the configured price ceiling.
	ErrInsufficientBalance = errors.New("session: insufficient balance")
)

// vendorClient is the slice of the SMSHub client the session needs.
type vendorClient interface {
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	BuyNumber(ctx context.Context) (order.Order, error)
	GetOTP(ctx context.Context, orderID string) (string, error)
	Cancel(ctx context.Context, orderID string) error
}

// Config holds session runtime parameters.
type Config struct {
	// BatchCap is the most numbers bought in one purchase cycle,
	// regardless of balance.
	BatchCap int

	// MaxPrice is the per-number price ceiling, used to compute how many
	// numbers the vendor-reported balance affords.
	MaxPrice decimal.Decimal

	// RefreshInterval is the polling cadence.
	RefreshInterval time.Duration
}

// Session owns the order store and coordinates the command handler and
// the polling loop over it.
type Session struct {
	cfg    Config
	client vendorClient
	store  *order.Store
	notify Notifier
	logger *slog.Logger
	poller *Poller
}

// New creates a Session with an empty store.
func New(cfg Config, client vendorClient, notify Notifier, logger *slog.Logger) *Session {
	store := order.NewStore()
	return &Session{
		cfg:    cfg,
		client: client,
		store:  store,
		notify: notify,
		logger: logger,
		poller: NewPoller(cfg.RefreshInterval, client, store, notify, logger),
	}
}

// Store exposes the live order collection, mainly for tests and display.
func (s *Session) Store() *order.Store {
	return s.store
}

// Run executes the session: initial purchase, polling loop, then the
// line-oriented command loop until the operator exits or input ends.
func (s *Session) Run(ctx context.Context, input io.Reader) error {
	if err := s.BuyBatch(ctx); err != nil {
		return err
	}
	s.notify.OrdersChanged(s.store.Orders())

	s.poller.Start(ctx)
	defer s.poller.Stop()

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		exit, err := s.HandleLine(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}

	// Input stream closed (EOF): release the numbers before leaving.
	s.CancelAll(ctx)
	return scanner.Err()
}

// HandleLine interprets one operator command. exit reports that the
// session should end; a non-nil error is fatal to the session.
func (s *Session) HandleLine(ctx context.Context, line string) (exit bool, err error) {
	input := strings.ToLower(strings.TrimSpace(line))

	switch {
	case input == "1":
		s.notify.Message("Cancelling all numbers and ordering new ones...", SeverityInfo)
		s.CancelAll(ctx)
		if err := s.BuyBatch(ctx); err != nil {
			return true, err
		}
		s.notify.OrdersChanged(s.store.Orders())
	case input == "2":
		s.notify.Message("Cancelling all numbers and exiting...", SeverityInfo)
		s.CancelAll(ctx)
		return true, nil
	case strings.HasPrefix(input, "c"):
		s.cancelOne(ctx, input)
	default:
		s.notify.Message("Invalid input. Try again.", SeverityWarning)
		s.notify.OrdersChanged(s.store.Orders())
	}
	return false, nil
}

// BuyBatch runs the purchase algorithm: confirm the balance, size the
// batch against the price ceiling, then buy sequentially. A failed slot
// is logged and skipped; the batch carries on.
func (s *Session) BuyBatch(ctx context.Context) error {
	balance, err := s.client.GetBalance(ctx)
	if err != nil {
		s.logger.Error("balance query failed", "error", err)
		s.notify.Message("Could not retrieve balance. Exiting program.", SeverityError)
		return fmt.Errorf("%w: %v", ErrBalanceUnavailable, err)
	}
	s.notify.Message(fmt.Sprintf("Balance: %s", balance.StringFixed(2)), SeveritySuccess)

	maxAffordable := balance.Div(s.cfg.MaxPrice).IntPart()
	toBuy := s.cfg.BatchCap
	if int64(toBuy) > maxAffordable {
		toBuy = int(maxAffordable)
	}

	if toBuy == 0 {
		s.notify.Message("Insufficient balance to buy numbers.", SeverityError)
		return ErrInsufficientBalance
	}

	s.notify.Message(fmt.Sprintf("Buying %d numbers...", toBuy), SeverityInfo)
	for i := 0; i < toBuy; i++ {
		o, err := s.client.BuyNumber(ctx)
		if err != nil {
			s.logger.Warn("number purchase failed", "slot", i+1, "error", err)
			s.notify.Message("Failed to purchase number.", SeverityWarning)
			continue
		}
		if err := s.store.Add(o); err != nil {
			s.logger.Warn("discarding purchased number", "order_id", o.ID, "error", err)
			continue
		}
		s.notify.Message(fmt.Sprintf("Successfully purchased number: %s", o.Number), SeveritySuccess)
	}
	return nil
}

// CancelAll drains the store, then attempts a vendor cancel for every
// removed order. Remote failures are reported but never restore local
// state; an orphaned vendor reservation is acceptable.
func (s *Session) CancelAll(ctx context.Context) {
	for _, o := range s.store.RemoveAll() {
		if err := s.client.Cancel(ctx, o.ID); err != nil {
			s.logger.Warn("cancel failed", "order_id", o.ID, "number", o.Number, "error", err)
			s.notify.Message(fmt.Sprintf("Failed to cancel number %s.", o.Number), SeverityWarning)
		}
	}
}

// cancelOne handles the c<N> command with a 1-based index.
func (s *Session) cancelOne(ctx context.Context, input string) {
	n, err := strconv.Atoi(input[1:])
	if err != nil || n < 1 {
		s.notify.Message("Invalid number selection!", SeverityWarning)
		s.notify.OrdersChanged(s.store.Orders())
		return
	}

	o, err := s.store.RemoveAt(n - 1)
	if err != nil {
		s.notify.Message("Invalid number selection!", SeverityWarning)
		s.notify.OrdersChanged(s.store.Orders())
		return
	}

	s.notify.Message(fmt.Sprintf("Cancelling number %s...", o.Number), SeverityInfo)
	if err := s.client.Cancel(ctx, o.ID); err != nil {
		s.logger.Warn("cancel failed", "order_id", o.ID, "number", o.Number, "error", err)
		s.notify.Message(fmt.Sprintf("Failed to cancel number %s.", o.Number), SeverityWarning)
	}
	s.notify.OrdersChanged(s.store.Orders())
}
