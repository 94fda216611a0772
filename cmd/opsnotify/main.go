// Command opsnotify is a local sink for operator notifications.
// It logs every event it receives and acknowledges it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"net/http"
	"os"
	"os/signal"
	"shopledger/internal/app/logger"
	mw "shopledger/internal/app/middleware"
	"shopledger/internal/app/model"
	"shopledger/pkg/opsnotify"
	"syscall"
	"time"
)

func main() {
	listenAddr := pflag.StringP("listen-addr", "a", "127.0.0.1:8090", "Server address to listen on")
	pflag.Parse()

	// setting up signal capturing
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		osCall := <-stop
		logger.Global().Info().Str("signal", fmt.Sprintf("%+v", osCall)).Msg("System call")
		cancel()
	}()

	l := logger.New(true, true)

	if err := runServer(ctx, *listenAddr, l); err != nil {
		l.Fatal().Err(err).Msg("Server run failed")
	}
}

func runServer(ctx context.Context, listenAddr string, l logger.Logger) (err error) {
	srv := &http.Server{
		Addr:    listenAddr,
		Handler: newRouter(l),
	}

	go func() {
		l.Info().Str("listen_address", listenAddr).Msg("Listening incoming connections")
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("")
		}
	}()

	<-ctx.Done()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err = srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	l.Info().Msg("Server exited properly")

	return
}

func newRouter(l logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(l))
	r.Post("/api/notifications", ReceiveEvent)
	return r
}

func ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	l := logger.Get(r.Context(), "OpsNotify.ReceiveEvent")

	in := &opsnotify.Event{}
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		l.Debug().Err(err).Msg("Bad event")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !in.Amount.IsZero() {
		if err := model.CheckAmount(in.Amount); err != nil {
			l.Debug().Err(err).Msg("Bad event amount")
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
	}

	var ev *zerolog.Event
	if in.Kind == opsnotify.KindOrphanTransaction {
		ev = l.Warn()
	} else {
		ev = l.Info()
	}
	ev.Str("event_id", in.ID).
		Str("kind", in.Kind).
		Str("recipient", in.Recipient).
		Str("account_id", in.AccountID).
		Str("transaction_id", in.TransactionID).
		Str("amount", in.Amount.String()).
		Str("detail", in.Detail).
		Msg("Notification received")

	id := in.ID
	if id == "" {
		id = xid.New().String()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&opsnotify.SendResponse{ID: id, Accepted: true})
}
