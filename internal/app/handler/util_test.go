package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"testing"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		err     error
		want    int
		wantMsg string
	}{
		{err: apperr.ErrInvalidAmount, want: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("wrapped: %w", apperr.ErrInvalidKind), want: http.StatusUnprocessableEntity},
		{err: apperr.ErrInvalidInput, want: http.StatusBadRequest},
		{err: fmt.Errorf("account: %w", apperr.ErrNotFound), want: http.StatusNotFound, wantMsg: "not found"},
		{err: apperr.ErrInsufficientBalance, want: http.StatusPaymentRequired},
		{err: apperr.ErrInvalidState, want: http.StatusConflict},
		{err: apperr.ErrItemUnavailable, want: http.StatusConflict},
		{err: apperr.ErrConflict, want: http.StatusConflict},
		{err: apperr.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: apperr.ErrForbidden, want: http.StatusForbidden},
		{err: apperr.ErrOrphanTransaction, want: http.StatusInternalServerError, wantMsg: "internal error"},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError, wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeAppError(rec, *logger.Global(), tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			out := jsonError{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, out.Message)
			}
		})
	}
}

func TestValidateData(t *testing.T) {
	in := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: "not-an-email"}

	rec := httptest.NewRecorder()
	assert.False(t, validateData(rec, in))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	out := ValidationErrorResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Email", out.Errors[0].Param)
	assert.Equal(t, "not-an-email", out.Errors[0].Value)

	in.Email = "a@b.test"
	assert.True(t, validateData(httptest.NewRecorder(), in))
}

func TestURLID(t *testing.T) {
	r := chi.NewRouter()
	var got error
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, got = urlID(r, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/6f1c4f4e-8d0a-4a57-9d7a-2f4b8d0c1e11", nil))
	assert.NoError(t, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/42", nil))
	assert.ErrorIs(t, got, apperr.ErrInvalidInput)
}

func TestReadContextAccount(t *testing.T) {
	_, err := ReadContextAccount(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	a := &model.Account{Name: "Alice"}
	got, err := ReadContextAccount(context.WithValue(context.Background(), ContextKeyAccount{}, a))
	require.NoError(t, err)
	assert.Same(t, a, got)
}
