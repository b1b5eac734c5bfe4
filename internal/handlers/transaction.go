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

type TransactionService interface {
	Create(ctx context.Context, uid string, intent dto.TransactionIntent) ([]models.Transaction, error)
	AppendToGroup(ctx context.Context, uid, groupID string, intent dto.TransactionIntent) (*models.Transaction, error)
	Delete(ctx context.Context, uid, txID string) error
	DeleteGroup(ctx context.Context, uid, groupID string) dto.GroupDeleteResult
	ListGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Delete("/{transactionId}", h.Delete)
	return r
}

func (h *transactionHandlers) GroupRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{groupId}/transactions", h.ListGroup)
	r.Post("/{groupId}/transactions", h.AppendToGroup)
	r.Delete("/{groupId}", h.DeleteGroup)
	return r
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var intent dto.TransactionIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.Create(r.Context(), uid, intent)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, txs)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.Delete(r.Context(), uid, txID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) ListGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.ListGroup(r.Context(), uid, groupID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) AppendToGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	var intent dto.TransactionIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.AppendToGroup(r.Context(), uid, groupID, intent)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	result := h.TransactionSvc.DeleteGroup(r.Context(), uid, groupID)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
