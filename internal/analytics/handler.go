package analytics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	ApplicantsByStage(ctx context.Context) ([]StageCount, error)
	ApplicantsOverTime(ctx context.Context, days int) ([]DayCount, error)
	JobStats(ctx context.Context, jobID string) (*JobStats, error)
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

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Dashboard(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) ApplicantsByStage(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.ApplicantsByStage(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) ApplicantsOverTime(w http.ResponseWriter, r *http.Request) {
	days := DefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleServiceError(w, ErrInvalidDays)
			return
		}
		days = n
	}

	counts, err := h.Service.ApplicantsOverTime(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) JobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.JobStats(r.Context(), chi.URLParam(r, "job_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}
