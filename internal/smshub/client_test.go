package smshub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsgrab/smsgrab/internal/smshub"
	"github.com/smsgrab/smsgrab/internal/testutil"
)

func newTestClient(baseURL string) *smshub.Client {
	return smshub.NewClient(smshub.Config{
		APIURL:   baseURL,
		APIKey:   "key123",
		Service:  "wa",
		Country:  "6",
		Operator: "any",
		Currency: "840",
		MaxPrice: decimal.RequireFromString("0.038"),
		Timeout:  5 * time.Second,
	}, testutil.DiscardLogger())
}

func TestGetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "key123", r.URL.Query().Get("api_key"))
		assert.Equal(t, "getBalance", r.URL.Query().Get("action"))
		assert.Equal(t, "840", r.URL.Query().Get("currency"))
		w.Write([]byte("ACCESS_BALANCE:0.10"))
	}))
	defer srv.Close()

	balance, err := newTestClient(srv.URL).GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("0.10")))
}

func TestGetBalanceUnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BAD_KEY"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetBalance(context.Background())
	var unexpected *smshub.UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "BAD_KEY", unexpected.Response)
}

func TestBuyNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "getNumber", q.Get("action"))
		assert.Equal(t, "wa", q.Get("service"))
		assert.Equal(t, "any", q.Get("operator"))
		assert.Equal(t, "6", q.Get("country"))
		assert.Equal(t, "0.038", q.Get("maxPrice"))
		assert.Equal(t, "840", q.Get("currency"))
		w.Write([]byte("ACCESS_NUMBER:12345:628123456789"))
	}))
	defer srv.Close()

	o, err := newTestClient(srv.URL).BuyNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12345", o.ID)
	assert.Equal(t, "628123456789", o.Number)
	assert.False(t, o.HasOTP())
}

func TestBuyNumberNoNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("NO_NUMBERS"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).BuyNumber(context.Background())
	var unexpected *smshub.UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "NO_NUMBERS", unexpected.Response)
}

func TestGetOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getStatus", r.URL.Query().Get("action"))
		assert.Equal(t, "12345", r.URL.Query().Get("id"))
		w.Write([]byte("STATUS_OK:5521"))
	}))
	defer srv.Close()

	otp, err := newTestClient(srv.URL).GetOTP(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "5521", otp)
}

func TestGetOTPWaitCodeIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("STATUS_WAIT_CODE"))
	}))
	defer srv.Close()

	otp, err := newTestClient(srv.URL).GetOTP(context.Background(), "12345")
	require.NoError(t, err)
	assert.Empty(t, otp)
}

func TestCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "setStatus", q.Get("action"))
		assert.Equal(t, "12345", q.Get("id"))
		assert.Equal(t, "8", q.Get("status"))
		w.Write([]byte("ACCESS_CANCEL"))
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Cancel(context.Background(), "12345"))
}

func TestCancelFailureIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("NO_ACTIVATION"))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Cancel(context.Background(), "12345")
	var unexpected *smshub.UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
}

func TestNetworkErrorIsUnavailable(t *testing.T) {
	// Nothing listens here; the dial fails immediately.
	c := newTestClient("http://127.0.0.1:1")

	_, err := c.GetBalance(context.Background())
	require.ErrorIs(t, err, smshub.ErrUnavailable)

	_, err = c.BuyNumber(context.Background())
	require.ErrorIs(t, err, smshub.ErrUnavailable)

	_, err = c.GetOTP(context.Background(), "12345")
	require.ErrorIs(t, err, smshub.ErrUnavailable)

	require.ErrorIs(t, c.Cancel(context.Background(), "12345"), smshub.ErrUnavailable)
}

func TestTrailingWhitespaceIsTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ACCESS_BALANCE:1.00\n"))
	}))
	defer srv.Close()

	balance, err := newTestClient(srv.URL).GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1)))
}
