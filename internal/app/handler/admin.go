package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"net/http"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/service/catalog"
	"shopledger/internal/app/service/ledger"
	"shopledger/internal/app/service/review"
)

// itemInput is the editable part of an item listing
type itemInput struct {
	Name        string          `json:"name" validate:"required,max=128"`
	Description string          `json:"description" validate:"max=2048"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"max=32"`
	Delivery    string          `json:"delivery" validate:"required,max=4096"`
}

func (in itemInput) item() *model.Item {
	return &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Delivery:    in.Delivery,
	}
}

type AdminHandler struct {
	review  *review.Service
	ledger  *ledger.Service
	catalog *catalog.Service
}

func NewAdminHandler(rv *review.Service, l *ledger.Service, c *catalog.Service) *AdminHandler {
	return &AdminHandler{
		review:  rv,
		ledger:  l,
		catalog: c,
	}
}

func (h *AdminHandler) PendingDeposits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.PendingDeposits")

	mm, err := h.review.List(ctx)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.ApproveDeposit")

	operator, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	res, err := h.review.Act(ctx, id, operator.ID)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, res, http.StatusOK)
}

func (h *AdminHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.Deposit")

	operator, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := struct {
		AccountID string          `json:"user_id" validate:"required,uuid"`
		Amount    decimal.Decimal `json:"amount"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	res, err := h.ledger.AdminDeposit(ctx, uuid.MustParse(in.AccountID), in.Amount, operator.ID)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, res, http.StatusOK)
}

func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.Revenue")

	res, err := h.ledger.Revenue(ctx)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, res, http.StatusOK)
}

func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.CreateItem")

	operator, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := itemInput{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m := in.item()
	m.CreatedBy = operator.ID

	m, err = h.catalog.Create(ctx, m)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, m, http.StatusCreated)
}

func (h *AdminHandler) ReadItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.ReadItem")

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	m, err := h.catalog.AdminRead(ctx, id)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, m, http.StatusOK)
}

func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.UpdateItem")

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	in := itemInput{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	m, err := h.catalog.Update(ctx, id, in.item())
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, m, http.StatusOK)
}

func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Admin.DeleteItem")

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	if err := h.catalog.Delete(ctx, id); err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, struct {
		Message string `json:"message"`
	}{Message: "Item " + id.String() + " deleted"}, http.StatusOK)
}
