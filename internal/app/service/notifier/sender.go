package notifier

import (
	"context"
	"github.com/rs/zerolog"
	"shopledger/internal/app/logger"
	"shopledger/pkg/opsnotify"
)

// LogSender writes events to the log when no webhook is configured.
// Orphan events keep the alert marker so log-based paging still fires.
type LogSender struct{}

func (LogSender) LoggerComponent() string {
	return "Notifier.LogSender"
}

func (ls LogSender) Send(ctx context.Context, in *opsnotify.Event) (*opsnotify.SendResponse, error) {
	l := logger.Get(ctx, ls)

	var e *zerolog.Event
	if in.Kind == opsnotify.KindOrphanTransaction {
		e = l.Error().Bool("alert", true)
	} else {
		e = l.Info()
	}
	e.Str("event_id", in.ID).
		Str("kind", in.Kind).
		Str("recipient", in.Recipient).
		Str("transaction_id", in.TransactionID).
		Str("account_email", in.AccountEmail).
		Stringer("amount", in.Amount).
		Str("detail", in.Detail).
		Msg("Operator notification")

	return &opsnotify.SendResponse{ID: in.ID, Accepted: true}, nil
}
