package notifier

import (
	"bytes"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopledger/internal/app/model"
	"shopledger/pkg/opsnotify"
	"strings"
	"sync"
	"testing"
	"time"
)

type flakySender struct {
	mu       sync.Mutex
	failures int
	calls    int
	sent     []*opsnotify.Event
	block    chan struct{}
}

func (f *flakySender) Send(_ context.Context, in *opsnotify.Event) (*opsnotify.SendResponse, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("sink unavailable")
	}
	f.sent = append(f.sent, in)
	return &opsnotify.SendResponse{ID: in.ID, Accepted: true}, nil
}

func (f *flakySender) Sent() []*opsnotify.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*opsnotify.Event(nil), f.sent...)
}

func (f *flakySender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func notification() *model.Notification {
	return &model.Notification{
		Kind:          model.NotificationDepositRequested,
		AccountID:     uuid.New(),
		AccountEmail:  "alice@example.com",
		TransactionID: uuid.New(),
		Amount:        decimal.NewFromInt(50000),
	}
}

func TestService_Notify(t *testing.T) {
	sender := &flakySender{}
	s, err := New(sender, 2, WithRecipient("ops@example.com"))
	require.NoError(t, err)
	defer s.Stop()

	n := notification()
	s.Notify(context.Background(), n)

	require.Eventually(t, func() bool {
		return len(sender.Sent()) == 1
	}, time.Second, 5*time.Millisecond)

	e := sender.Sent()[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "deposit_requested", e.Kind)
	assert.Equal(t, "ops@example.com", e.Recipient)
	assert.Equal(t, n.TransactionID.String(), e.TransactionID)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestService_Retry(t *testing.T) {
	sender := &flakySender{failures: 2}
	s, err := New(sender, 1, WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	defer s.Stop()

	s.Notify(context.Background(), notification())

	require.Eventually(t, func() bool {
		return len(sender.Sent()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, sender.Calls())
	assert.Zero(t, s.Dropped())
}

func TestService_GiveUp(t *testing.T) {
	sender := &flakySender{failures: 10}
	s, err := New(sender, 1, WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer s.Stop()

	s.Notify(context.Background(), notification())

	require.Eventually(t, func() bool {
		return s.Dropped() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, sender.Calls())
	assert.Empty(t, sender.Sent())
}

func TestService_DropWhenFull(t *testing.T) {
	sender := &flakySender{block: make(chan struct{})}
	s, err := New(sender, 1, WithQueueSize(1))
	require.NoError(t, err)

	// first is picked up by the blocked worker, second waits in the queue
	s.Notify(context.Background(), notification())
	require.Eventually(t, func() bool {
		return len(s.jobs) == 0
	}, time.Second, time.Millisecond)
	s.Notify(context.Background(), notification())

	done := make(chan struct{})
	go func() {
		s.Notify(context.Background(), notification())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	assert.Equal(t, uint64(1), s.Dropped())

	close(sender.block)
	s.Stop()
}

func TestLogSender_Send(t *testing.T) {
	tests := []struct {
		kind      string
		wantLevel string
		wantAlert bool
	}{
		{kind: opsnotify.KindDepositRequested, wantLevel: `"level":"info"`},
		{kind: opsnotify.KindOrphanTransaction, wantLevel: `"level":"error"`, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := zerolog.New(buf)
			ctx := l.WithContext(context.Background())

			out, err := LogSender{}.Send(ctx, &opsnotify.Event{ID: "x", Kind: tt.kind})
			require.NoError(t, err)
			assert.True(t, out.Accepted)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 1)
			assert.Contains(t, lines[0], tt.wantLevel)
			assert.Equal(t, tt.wantAlert, strings.Contains(lines[0], `"alert":true`))
		})
	}
}
