package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"io/ioutil"
	"net/http"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
)

var (
	validate = validator.New()

	errInternal = errors.New("internal error")
)

// readBody into json struct
func readBody(r *http.Request, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

type jsonError struct {
	Message string `json:"error"`
}

// WriteError formatted in json
func WriteError(w http.ResponseWriter, err error, statusCode int) {
	WriteResponse(w, &jsonError{Message: err.Error()}, statusCode)
}

// WriteResponse formatted in json
func WriteResponse(w http.ResponseWriter, v interface{}, statusCode int) {
	resBody, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(resBody)
}

// writeAppError maps domain errors to status codes. Unknown errors are logged
// and answered without details.
func writeAppError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidAmount), errors.Is(err, apperr.ErrInvalidKind):
		l.Debug().Err(err).Msg("Unprocessable")
		WriteError(w, err, http.StatusUnprocessableEntity)
	case errors.Is(err, apperr.ErrInvalidInput):
		l.Debug().Err(err).Msg("Validation error")
		WriteError(w, err, http.StatusBadRequest)
	case errors.Is(err, apperr.ErrNotFound):
		l.Debug().Err(err).Msg("Not found")
		WriteError(w, apperr.ErrNotFound, http.StatusNotFound)
	case errors.Is(err, apperr.ErrInsufficientBalance):
		l.Debug().Err(err).Msg("Insufficient balance")
		WriteError(w, err, http.StatusPaymentRequired)
	case errors.Is(err, apperr.ErrInvalidState),
		errors.Is(err, apperr.ErrItemUnavailable),
		errors.Is(err, apperr.ErrConflict):
		l.Debug().Err(err).Msg("Conflict")
		WriteError(w, err, http.StatusConflict)
	case errors.Is(err, apperr.ErrUnauthorized):
		WriteError(w, err, http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, err, http.StatusForbidden)
	case errors.Is(err, apperr.ErrOrphanTransaction):
		l.Error().Err(err).Msg("Orphan transaction")
		WriteError(w, errInternal, http.StatusInternalServerError)
	default:
		l.Error().Err(err).Msg("Internal error")
		WriteError(w, errInternal, http.StatusInternalServerError)
	}
}

type ValidationErrorResponse struct {
	Errors ValidationErrors `json:"errors"`
}

type ValidationErrors []ValidationError

type ValidationError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// validateData and send errors, returns true if no validation errors
func validateData(w http.ResponseWriter, v interface{}) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		WriteError(w, err, http.StatusBadRequest)
		return false
	}

	errs := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, ValidationError{
			Msg:   fe.Error(),
			Param: fe.Field(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	writeValidationErrors(w, errs)

	return false
}

// writeValidationErrors formatted in json
func writeValidationErrors(w http.ResponseWriter, errors ValidationErrors) {
	WriteResponse(w, ValidationErrorResponse{errors}, http.StatusBadRequest)
}

// urlID parses a uuid path parameter
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", apperr.ErrInvalidInput, name)
	}
	return id, nil
}

type ContextKeyAccount struct{}

func ReadContextAccount(ctx context.Context) (*model.Account, error) {
	v := ctx.Value(ContextKeyAccount{})
	if a, ok := v.(*model.Account); ok {
		return a, nil
	}

	return nil, apperr.ErrUnauthorized
}
