package handler

import (
	"errors"
	"github.com/shopspring/decimal"
	"net/http"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/service/ledger"
	"shopledger/internal/app/session"
	"shopledger/internal/app/storage"
	"strings"
)

type AccountHandler struct {
	session  session.Creator
	accounts storage.AccountRepository
	ledger   *ledger.Service
}

func NewAccountHandler(accounts storage.AccountRepository, sm session.Creator, l *ledger.Service) *AccountHandler {
	return &AccountHandler{
		session:  sm,
		accounts: accounts,
		ledger:   l,
	}
}

type tokenResponse struct {
	Token   string         `json:"token"`
	Account *model.Account `json:"user"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.Get(r.Context(), "Handler.Account.Register")

	in := struct {
		Name     string `json:"name" validate:"required,min=1,max=64"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	a, err := h.accounts.Create(r.Context(), &model.Account{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(in.Email),
		Password: in.Password,
		Role:     model.RoleCustomer,
	})
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	token, err := h.session.Create(r.Context(), a)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	log.Info().Str("account_id", a.ID.String()).Msg("Account registered")

	w.Header().Add("Authorization", "Bearer "+token)

	WriteResponse(w, tokenResponse{Token: token, Account: a}, http.StatusCreated)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.Get(r.Context(), "Handler.Account.Login")

	in := struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,max=72"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	a, err := h.accounts.ReadByEmailAndPassword(r.Context(), strings.ToLower(in.Email), in.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
			return
		}
		writeAppError(w, log, err)
		return
	}

	token, err := h.session.Create(r.Context(), a)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	w.Header().Add("Authorization", "Bearer "+token)

	WriteResponse(w, tokenResponse{Token: token, Account: a}, http.StatusOK)
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Account.Me")

	a, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	fresh, err := h.accounts.Read(ctx, a.ID)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, fresh, http.StatusOK)
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Account.Balance")

	a, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	balance, err := h.ledger.Balance(ctx, a.ID)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	out := struct {
		Balance decimal.Decimal `json:"balance"`
	}{balance}

	WriteResponse(w, out, http.StatusOK)
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Account.Transactions")

	a, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	mm, err := h.ledger.History(ctx, a.ID)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Account.Deposit")

	a, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := struct {
		Amount decimal.Decimal `json:"amount"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	m, err := h.ledger.RequestDeposit(ctx, a.ID, in.Amount)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	out := struct {
		Transaction *model.Transaction `json:"transaction"`
		Message     string             `json:"message"`
	}{m, "Deposit request submitted, waiting for approval"}

	WriteResponse(w, out, http.StatusAccepted)
}
