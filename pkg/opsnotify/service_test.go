package opsnotify

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestService_Send(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SendResponse{ID: got.ID, Accepted: true})
	}))
	defer srv.Close()

	s, err := NewService(srv.URL)
	require.NoError(t, err)

	out, err := s.Send(context.Background(), &Event{
		ID:            "evt-1",
		Kind:          KindDepositRequested,
		TransactionID: "tx-1",
		Amount:        decimal.NewFromInt(50000),
		OccurredAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "evt-1", out.ID)
	assert.Equal(t, KindDepositRequested, got.Kind)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(50000)))
}

func TestService_SendRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad event", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s, err := NewService(srv.URL)
	require.NoError(t, err)

	_, err = s.Send(context.Background(), &Event{ID: "evt-2", Kind: KindOrphanTransaction})
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusUnprocessableEntity, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.ResponseBody, "bad event")
}

func TestService_BreakerOpens(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s, err := NewService(srv.URL, WithBreaker(2, time.Minute))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := s.Send(context.Background(), &Event{ID: "evt", Kind: KindDepositRequested})
		require.Error(t, err)
	}

	_, err = s.Send(context.Background(), &Event{ID: "evt", Kind: KindDepositRequested})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewService_EmptyURL(t *testing.T) {
	_, err := NewService("")
	assert.Error(t, err)
}
