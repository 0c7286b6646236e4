package history

import (
	"context"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/transport"
)

type ServiceAPI interface {
	Record(ctx context.Context, req CreateRecordRequest) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Stats(ctx context.Context) ([]StatusCount, error)
	ClearAll(ctx context.Context) (int64, error)
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

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rec, err := h.Service.Record(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, CreatedResponse{
		ID:     rec.ID,
		Name:   rec.Name,
		Email:  rec.Email,
		Status: rec.Status,
	})
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Service.ClearAll(r.Context()); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "History cleared successfully"})
}
