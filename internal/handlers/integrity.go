package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/middleware"
	"github.com/rfmelo/fintrack-backend/internal/response"
)

type GroupService interface {
	DetectOrphans(ctx context.Context, uid string) dto.GroupValidationResult
	ValidateGroupIntegrity(ctx context.Context, groupID, uid string) (dto.GroupIntegrityResult, error)
	CleanupOrphans(ctx context.Context, uid, strategy string) dto.CleanupResult
	FixGroupIndexing(ctx context.Context, groupID, uid string) dto.ReindexResult
}

type integrityHandlers struct {
	ResponseHandler response.ResponseHandler
	GroupSvc        GroupService
}

func NewIntegrityHandlers(deps *Deps) *integrityHandlers {
	return &integrityHandlers{
		ResponseHandler: deps.ResponseHandler,
		GroupSvc:        deps.GroupSvc,
	}
}

func (h *integrityHandlers) IntegrityRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/orphans", h.DetectOrphans)
	r.Post("/orphans/cleanup", h.CleanupOrphans)
	r.Get("/groups/{groupId}", h.ValidateGroup)
	r.Post("/groups/{groupId}/reindex", h.ReindexGroup)
	return r
}

func (h *integrityHandlers) DetectOrphans(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result := h.GroupSvc.DetectOrphans(r.Context(), uid)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *integrityHandlers) CleanupOrphans(w http.ResponseWriter, r *http.Request) {
	var req dto.CleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	result := h.GroupSvc.CleanupOrphans(r.Context(), uid, req.Strategy)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *integrityHandlers) ValidateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	result, err := h.GroupSvc.ValidateGroupIntegrity(r.Context(), groupID, uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *integrityHandlers) ReindexGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	result := h.GroupSvc.FixGroupIndexing(r.Context(), groupID, uid)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
