package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"net/http"
	"shopledger/internal/app/handler"
	mw "shopledger/internal/app/middleware"
	"shopledger/internal/app/model"
)

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(a.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization", "Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	auth := mw.Auth(a.session)

	// api
	ah := handler.NewAccountHandler(a.accounts, a.session, a.ledger)
	ih := handler.NewItemHandler(a.catalog)
	adh := handler.NewAdminHandler(a.review, a.ledger, a.catalog)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", ah.Register)
			r.Post("/login", ah.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", ah.Me)
				r.Get("/balance", ah.Balance)
				r.Get("/transactions", ah.Transactions)
				r.Post("/deposit", ah.Deposit)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", ih.List)
			r.Get("/{id}", ih.Read)
			r.With(auth).Post("/{id}/buy", ih.Buy)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth, mw.RequireRole(model.RoleAdmin))
			r.Get("/pending-deposits", adh.PendingDeposits)
			r.Post("/approve-deposit/{id}", adh.ApproveDeposit)
			r.Post("/deposit", adh.Deposit)
			r.Get("/revenue", adh.Revenue)
			r.Post("/items", adh.CreateItem)
			r.Get("/items/{id}", adh.ReadItem)
			r.Put("/items/{id}", adh.UpdateItem)
			r.Delete("/items/{id}", adh.DeleteItem)
		})
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteResponse(w, struct {
			Status string `json:"status"`
		}{Status: "ok"}, http.StatusOK)
	})

	return r
}
