package screening

import (
	"context"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/transport"
)

type ServiceAPI interface {
	Screen(ctx context.Context, jobID string) ([]Annotated, error)
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

func (h *Handler) ScreenApplicants(w http.ResponseWriter, r *http.Request) {
	annotated, err := h.Service.Screen(r.Context(), r.URL.Query().Get("job_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, annotated)
}
