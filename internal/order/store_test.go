package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsgrab/smsgrab/internal/order"
)

func TestStoreAddPreservesInsertionOrder(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))
	require.NoError(t, s.Add(order.Order{ID: "b", Number: "222"}))
	require.NoError(t, s.Add(order.Order{ID: "c", Number: "333"}))

	got := s.Orders()
	require.Len(t, got, 3)
	assert.Equal(t, "111", got[0].Number)
	assert.Equal(t, "222", got[1].Number)
	assert.Equal(t, "333", got[2].Number)
}

func TestStoreAddRejectsDuplicateID(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))

	err := s.Add(order.Order{ID: "a", Number: "999"})
	require.ErrorIs(t, err, order.ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
}

func TestStoreRemoveAt(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))
	require.NoError(t, s.Add(order.Order{ID: "b", Number: "222"}))

	removed, err := s.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)

	got := s.Orders()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestStoreRemoveAtOutOfRange(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))

	for _, idx := range []int{-1, 1, 5} {
		_, err := s.RemoveAt(idx)
		require.ErrorIs(t, err, order.ErrIndexOutOfRange)
	}
	// Failed removals never mutate the store.
	assert.Equal(t, 1, s.Len())
}

func TestStoreRemoveAllDrains(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))
	require.NoError(t, s.Add(order.Order{ID: "b", Number: "222"}))

	removed := s.RemoveAll()
	require.Len(t, removed, 2)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.RemoveAll())

	// IDs are free for reuse after removal.
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))
}

func TestStoreSetOTP(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))

	assert.True(t, s.SetOTP("a", "5521"))
	got := s.Orders()
	assert.Equal(t, "5521", got[0].OTP)
	assert.True(t, got[0].HasOTP())

	// Once set, the code sticks.
	assert.False(t, s.SetOTP("a", "9999"))
	assert.Equal(t, "5521", s.Orders()[0].OTP)

	// Unknown IDs are a no-op.
	assert.False(t, s.SetOTP("nope", "1234"))
}

func TestStorePendingSkipsOrdersWithOTP(t *testing.T) {
	s := order.NewStore()
	require.NoError(t, s.Add(order.Order{ID: "a", Number: "111"}))
	require.NoError(t, s.Add(order.Order{ID: "b", Number: "222"}))

	s.SetOTP("a", "5521")

	pending := s.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].ID)
}
