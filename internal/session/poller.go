package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smsgrab/smsgrab/internal/order"
)

// Poller drives the refresh loop: every interval it asks the vendor about
// each order still waiting for a passcode and records what arrived. The
// loop keeps ticking with zero orders; an empty tick is a no-op.
type Poller struct {
	interval time.Duration
	client   vendorClient
	store    *order.Store
	notify   Notifier
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a Poller over the given store.
func NewPoller(interval time.Duration, client vendorClient, store *order.Store, notify Notifier, logger *slog.Logger) *Poller {
	return &Poller{
		interval: interval,
		client:   client,
		store:    store,
		notify:   notify,
		logger:   logger,
	}
}

// Start launches the polling goroutine.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.loop(ctx)
	p.logger.Debug("poller started", "interval", p.interval)
}

// Stop signals the loop to finish and waits for the in-flight tick.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Debug("poller stopped")
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick polls every pending order once, in store order. Per-order failures
// are logged and skipped; they never abort the tick. A re-render is
// requested when any OTP arrived or any order exists.
func (p *Poller) Tick(ctx context.Context) {
	updated := false
	for _, o := range p.store.Pending() {
		otp, err := p.client.GetOTP(ctx, o.ID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("otp poll failed", "order_id", o.ID, "number", o.Number, "error", err)
			continue
		}
		if otp == "" {
			continue
		}
		if p.store.SetOTP(o.ID, otp) {
			updated = true
			p.logger.Info("otp received", "order_id", o.ID, "number", o.Number)
			p.notify.OTPReceived(o.Number, otp)
		}
	}

	if updated || p.store.Len() > 0 {
		p.notify.OrdersChanged(p.store.Orders())
	}
}
