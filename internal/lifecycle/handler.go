package lifecycle

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SetStage(ctx context.Context, id, stage string) (*applicant.Applicant, error)
	SendOffer(ctx context.Context, id string, req OfferRequest) (*applicant.Applicant, error)
	RespondToOffer(ctx context.Context, id, response string) (applicant.Stage, error)
	BulkAccept(ctx context.Context, ids []string, reason string) (*DecisionResult, error)
	BulkReject(ctx context.Context, ids []string, reason string) (*DecisionResult, error)
	Merge(ctx context.Context, ids []string) (*MergeResult, error)
	SendBulkAcceptance(ctx context.Context, ids []string) (*EmailResult, error)
	SendBulkRejection(ctx context.Context, ids []string) (*EmailResult, error)
	SendDuplicateWarning(ctx context.Context, ids []string) (*EmailResult, error)
	SendIdentityWarning(ctx context.Context, ids []string) (*EmailResult, error)
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

func (h *Handler) SetStage(w http.ResponseWriter, r *http.Request) {
	var req StageRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.SetStage(r.Context(), chi.URLParam(r, "id"), req.Stage)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) SendOffer(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.SendOffer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, OfferSentResponse{Message: "Offer sent successfully", Applicant: a})
}

func (h *Handler) RespondToOffer(w http.ResponseWriter, r *http.Request) {
	var req OfferResponseRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	stage, err := h.Service.RespondToOffer(r.Context(), chi.URLParam(r, "id"), req.Response)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, OfferAnsweredResponse{
		Message: fmt.Sprintf("Offer %s successfully", req.Response),
		Stage:   stage,
	})
}

func (h *Handler) BulkAccept(w http.ResponseWriter, r *http.Request) {
	h.bulkDecision(w, r, h.Service.BulkAccept)
}

func (h *Handler) BulkReject(w http.ResponseWriter, r *http.Request) {
	h.bulkDecision(w, r, h.Service.BulkReject)
}

func (h *Handler) bulkDecision(w http.ResponseWriter, r *http.Request, run func(context.Context, []string, string) (*DecisionResult, error)) {
	var req DecisionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := run(r.Context(), req.ApplicantIDs, req.Reason)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.Merge(r.Context(), req.ApplicantIDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) SendBulkAcceptance(w http.ResponseWriter, r *http.Request) {
	h.emails(w, r, h.Service.SendBulkAcceptance)
}

func (h *Handler) SendBulkRejection(w http.ResponseWriter, r *http.Request) {
	h.emails(w, r, h.Service.SendBulkRejection)
}

func (h *Handler) SendDuplicateWarning(w http.ResponseWriter, r *http.Request) {
	h.emails(w, r, h.Service.SendDuplicateWarning)
}

func (h *Handler) SendIdentityWarning(w http.ResponseWriter, r *http.Request) {
	h.emails(w, r, h.Service.SendIdentityWarning)
}

func (h *Handler) emails(w http.ResponseWriter, r *http.Request, send func(context.Context, []string) (*EmailResult, error)) {
	var req SelectionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := send(r.Context(), req.ApplicantIDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
