package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/middleware"
	"github.com/rfmelo/fintrack-backend/internal/models"
	"github.com/rfmelo/fintrack-backend/internal/response"
)

type ReferenceService interface {
	ListCategories(ctx context.Context, uid string) ([]models.Category, error)
	CreateCategory(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error)
	ListAccounts(ctx context.Context, uid string) ([]models.Account, error)
	CreateAccount(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error)
}

type referenceHandlers struct {
	ResponseHandler response.ResponseHandler
	ReferenceSvc    ReferenceService
}

func NewReferenceHandlers(deps *Deps) *referenceHandlers {
	return &referenceHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReferenceSvc:    deps.ReferenceSvc,
	}
}

func (h *referenceHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	return r
}

func (h *referenceHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAccounts)
	r.Post("/", h.CreateAccount)
	return r
}

func (h *referenceHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	categories, err := h.ReferenceSvc.ListCategories(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, categories)
}

func (h *referenceHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	c, err := h.ReferenceSvc.CreateCategory(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, c)
}

func (h *referenceHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.ReferenceSvc.ListAccounts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *referenceHandlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	a, err := h.ReferenceSvc.CreateAccount(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, a)
}
