package middleware

import (
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"net/http"
	"shopledger/internal/app/logger"
	"time"
)

// Log attaches the logger to every request and writes one access line per response
func Log(l logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return alice.New(
			hlog.NewHandler(l.Logger),
			hlog.RequestIDHandler("req_id", "Request-Id"),
			hlog.RemoteAddrHandler("ip"),
			hlog.MethodHandler("method"),
			hlog.URLHandler("url"),
			hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
				l := hlog.FromRequest(r)
				var e *zerolog.Event
				if status >= http.StatusInternalServerError {
					e = l.Error()
				} else {
					e = l.Info()
				}
				e.Int("status", status).
					Int("size", size).
					Dur("duration", duration).
					Msg("Request")
			}),
		).Then(next)
	}
}
