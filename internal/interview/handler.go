package interview

import (
	"context"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter Filter) ([]*Interview, error)
	Get(ctx context.Context, id string) (*Interview, error)
	Create(ctx context.Context, req CreateInterviewRequest) (*Interview, error)
	Update(ctx context.Context, id string, req UpdateInterviewRequest) (*Interview, error)
	Delete(ctx context.Context, id string) error
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

func (h *Handler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	interviews, err := h.Service.List(r.Context(), Filter{
		ApplicantID: q.Get("applicant_id"),
		JobID:       q.Get("job_id"),
		Status:      q.Get("status"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, interviews)
}

func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	i, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	i, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, i)
}

func (h *Handler) UpdateInterview(w http.ResponseWriter, r *http.Request) {
	var req UpdateInterviewRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	i, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
