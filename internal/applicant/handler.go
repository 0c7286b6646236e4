package applicant

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter Filter) ([]*Applicant, error)
	Get(ctx context.Context, id string) (*Applicant, error)
	Create(ctx context.Context, req CreateApplicantRequest) (*Applicant, error)
	Update(ctx context.Context, id string, req UpdateApplicantRequest) (*Applicant, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	BulkUpdateStage(ctx context.Context, ids []string, stage string) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	applicants, err := h.Service.List(r.Context(), Filter{
		JobID:  q.Get("job_id"),
		Stage:  q.Get("stage"),
		Status: q.Get("status"),
		Email:  q.Get("email"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, applicants)
}

func (h *Handler) GetApplicant(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateApplicant(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicantRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateApplicant(w http.ResponseWriter, r *http.Request) {
	var req UpdateApplicantRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteApplicant(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAllApplicants(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Service.DeleteAll(r.Context()); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BulkUpdateStage(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateStageRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.Service.BulkUpdateStage(r.Context(), req.ApplicantIDs, req.Stage); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Updated %d applicants to stage: %s", len(req.ApplicantIDs), req.Stage),
	})
}
