package notifier

import (
	"context"
	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/pkg/opsnotify"
	"sync"
	"sync/atomic"
	"time"
)

// Sender delivers one event to the operator channel
type Sender interface {
	Send(ctx context.Context, in *opsnotify.Event) (*opsnotify.SendResponse, error)
}

type job struct {
	id      string
	event   *opsnotify.Event
	attempt int
}

type Service struct {
	logger logger.Logger
	sender Sender

	jobs     chan *job
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	recipient   string
	maxAttempts int
	retryDelay  time.Duration
	sendTimeout time.Duration

	dropped uint64
}

type Option func(s *Service)

func WithQueueSize(n int) Option {
	return func(s *Service) {
		s.jobs = make(chan *job, n)
	}
}

func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.maxAttempts = maxAttempts
		s.retryDelay = delay
	}
}

// WithRecipient addresses every event to the operator mailbox
func WithRecipient(email string) Option {
	return func(s *Service) {
		s.recipient = email
	}
}

func (s *Service) LoggerComponent() string {
	return "Notifier.Service"
}

func New(sender Sender, numWorkers int, opts ...Option) (*Service, error) {
	s := &Service{
		logger:      logger.Global().WithComponent("Notifier.Service"),
		sender:      sender,
		jobs:        make(chan *job, 128),
		stopCh:      make(chan struct{}),
		maxAttempts: 5,
		retryDelay:  time.Second,
		sendTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 1
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	s.Start(numWorkers)

	return s, nil
}

func (s *Service) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		s.wg.Add(1)
		go func(workerID int, l logger.Logger) {
			defer s.wg.Done()
			for {
				select {
				case <-s.stopCh:
					return
				case j := <-s.jobs:
					s.run(l.With().Int("worker_id", workerID).Logger(), j)
				}
			}
		}(i, s.logger)
	}
}

func (s *Service) run(l zerolog.Logger, j *job) {
	j.attempt++
	ll := l.With().
		Str("job_id", j.id).
		Str("kind", j.event.Kind).
		Int("attempt", j.attempt).
		Logger()

	ctx, cancel := context.WithTimeout(ll.WithContext(context.Background()), s.sendTimeout)
	defer cancel()

	if _, err := s.sender.Send(ctx, j.event); err != nil {
		if j.attempt >= s.maxAttempts {
			ll.Error().Err(err).Msg("Notification dropped after retries")
			atomic.AddUint64(&s.dropped, 1)
			return
		}
		ll.Warn().Err(err).Msg("Notification failed, retrying")
		go func() {
			t := time.NewTimer(s.retryDelay)
			defer t.Stop()
			select {
			case <-s.stopCh:
			case <-t.C:
				s.enqueue(j)
			}
		}()
		return
	}

	ll.Debug().Msg("Notification sent")
}

// Stop the workers. Queued notifications are discarded.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Debug().Msg("Service shutdown")
		close(s.stopCh)
	})
	s.wg.Wait()
}

// Notify queues the notification and returns immediately. A full queue drops it.
func (s *Service) Notify(ctx context.Context, n *model.Notification) {
	e := &opsnotify.Event{
		ID:            xid.New().String(),
		Kind:          string(n.Kind),
		Recipient:     s.recipient,
		TransactionID: n.TransactionID.String(),
		AccountName:   n.AccountName,
		AccountEmail:  n.AccountEmail,
		Amount:        n.Amount,
		Detail:        n.Detail,
		OccurredAt:    n.OccurredAt,
	}
	if n.AccountID != uuid.Nil {
		e.AccountID = n.AccountID.String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	if !s.enqueue(&job{id: e.ID, event: e}) {
		l := logger.Get(ctx, s)
		l.Warn().Str("job_id", e.ID).Str("kind", e.Kind).Msg("Notification queue full, dropped")
	}
}

func (s *Service) enqueue(j *job) bool {
	select {
	case <-s.stopCh:
		atomic.AddUint64(&s.dropped, 1)
		return false
	default:
	}

	select {
	case s.jobs <- j:
		return true
	default:
		atomic.AddUint64(&s.dropped, 1)
		return false
	}
}

// Dropped counts notifications that were never delivered
func (s *Service) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}
