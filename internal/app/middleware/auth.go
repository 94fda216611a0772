package middleware

import (
	"context"
	"net/http"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/handler"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/session"
	"strings"
)

func Auth(jwt session.Reader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.Get(r.Context(), "Middleware.Auth")

			reqHeader := r.Header.Get("Authorization")
			splitToken := strings.Split(reqHeader, "Bearer ")
			if len(splitToken) != 2 || splitToken[1] == "" {
				log.Debug().Msg("Invalid Authorization header")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			a, err := jwt.Read(r.Context(), splitToken[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			log.Debug().Str("account_id", a.ID.String()).Msg("Account authorized")
			r = r.WithContext(context.WithValue(r.Context(), handler.ContextKeyAccount{}, a))
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole lets through authorized accounts that hold the role
func RequireRole(role model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, err := handler.ReadContextAccount(r.Context())
			if err != nil {
				handler.WriteError(w, err, http.StatusUnauthorized)
				return
			}

			if a.Role != role {
				l := logger.Get(r.Context(), "Middleware.RequireRole")
				l.Debug().
					Str("account_id", a.ID.String()).
					Str("role", string(a.Role)).
					Msg("Forbidden")
				handler.WriteError(w, apperr.ErrForbidden, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
