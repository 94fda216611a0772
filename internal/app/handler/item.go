package handler

import (
	"errors"
	"net/http"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/service/catalog"
)

var errCategoryTooLong = errors.New("category is too long")

type ItemHandler struct {
	catalog *catalog.Service
}

func NewItemHandler(c *catalog.Service) *ItemHandler {
	return &ItemHandler{catalog: c}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Item.List")

	category := r.URL.Query().Get("category")
	if len(category) > 32 {
		WriteError(w, errCategoryTooLong, http.StatusBadRequest)
		return
	}

	mm, err := h.catalog.Available(ctx, category)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

func (h *ItemHandler) Read(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Item.Read")

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	m, err := h.catalog.Read(ctx, id)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, m, http.StatusOK)
}

func (h *ItemHandler) Buy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.Get(ctx, "Handler.Item.Buy")

	a, err := ReadContextAccount(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	res, err := h.catalog.Buy(ctx, a.ID, id)
	if err != nil {
		writeAppError(w, log, err)
		return
	}

	WriteResponse(w, res, http.StatusOK)
}
