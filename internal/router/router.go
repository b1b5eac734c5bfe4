package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rfmelo/fintrack-backend/internal/handlers"
)

func NewRouter(deps *handlers.Deps, auth, requestLogger func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger)
	r.Use(auth)

	th := handlers.NewTransactionHandlers(deps)
	ih := handlers.NewIntegrityHandlers(deps)
	rh := handlers.NewReferenceHandlers(deps)

	r.Mount("/transactions", th.TransactionRoutes())
	r.Mount("/groups", th.GroupRoutes())
	r.Mount("/integrity", ih.IntegrityRoutes())
	r.Mount("/categories", rh.CategoryRoutes())
	r.Mount("/accounts", rh.AccountRoutes())
	return r
}
