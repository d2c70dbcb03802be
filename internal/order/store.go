package order

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrIndexOutOfRange is returned by RemoveAt for indices outside [0, Len).
	ErrIndexOutOfRange = errors.New("order index out of range")

	// ErrDuplicateID is returned by Add when an order with the same vendor
	// ID is already live.
	ErrDuplicateID = errors.New("duplicate order id")
)

// Store is an ordered collection of live orders. Insertion order is
// preserved (display order = acquisition order). The polling tick and the
// operator command handler mutate it from different goroutines, so every
// operation takes the mutex.
type Store struct {
	mu     sync.Mutex
	orders []Order
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends an order. The vendor ID must be unique among live orders.
func (s *Store) Add(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.ID == o.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, o.ID)
		}
	}
	s.orders = append(s.orders, o)
	return nil
}

// RemoveAt removes and returns the order at the given zero-based index.
// The store is left untouched when the index is out of range.
func (s *Store) RemoveAt(i int) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.orders) {
		return Order{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	o := s.orders[i]
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return o, nil
}

// RemoveAll drains the store and returns the removed orders so the caller
// can issue vendor-side cancellations for them.
func (s *Store) RemoveAll() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.orders
	s.orders = nil
	return removed
}

// SetOTP records a passcode for the order with the given vendor ID.
// It reports whether an order was updated; an order that already holds an
// OTP keeps its existing code.
func (s *Store) SetOTP(id, otp string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			if s.orders[i].OTP != "" {
				return false
			}
			s.orders[i].OTP = otp
			return true
		}
	}
	return false
}

// Len returns the number of live orders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Orders returns a snapshot of all live orders in acquisition order.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

// Pending returns a snapshot of the orders still waiting for a passcode,
// in acquisition order.
func (s *Store) Pending() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []Order
	for _, o := range s.orders {
		if !o.HasOTP() {
			pending = append(pending, o)
		}
	}
	return pending
}
