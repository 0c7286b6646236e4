package lifecycle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/lifecycle"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockService struct {
	lastIDs    []string
	lastReason string
	respondErr error
}

func (m *MockService) SetStage(_ context.Context, id, stage string) (*applicant.Applicant, error) {
	return &applicant.Applicant{ID: id, Stage: applicant.Stage(stage)}, nil
}

func (m *MockService) SendOffer(_ context.Context, id string, _ lifecycle.OfferRequest) (*applicant.Applicant, error) {
	pending := applicant.OfferPending
	return &applicant.Applicant{ID: id, OfferStatus: &pending}, nil
}

func (m *MockService) RespondToOffer(_ context.Context, _ string, response string) (applicant.Stage, error) {
	if m.respondErr != nil {
		return "", m.respondErr
	}
	if response == "accepted" {
		return applicant.StageHired, nil
	}
	return applicant.StageDeclined, nil
}

func (m *MockService) BulkAccept(_ context.Context, ids []string, reason string) (*lifecycle.DecisionResult, error) {
	m.lastIDs, m.lastReason = ids, reason
	return &lifecycle.DecisionResult{Successful: len(ids), Errors: []lifecycle.ItemError{}}, nil
}

func (m *MockService) BulkReject(ctx context.Context, ids []string, reason string) (*lifecycle.DecisionResult, error) {
	return m.BulkAccept(ctx, ids, reason)
}

func (m *MockService) Merge(_ context.Context, ids []string) (*lifecycle.MergeResult, error) {
	if len(ids) < 2 {
		return nil, lifecycle.ErrMergeSelection
	}
	return &lifecycle.MergeResult{MasterID: ids[0], Merged: len(ids) - 1}, nil
}

func (m *MockService) emails(ids []string) (*lifecycle.EmailResult, error) {
	if len(ids) == 0 {
		return nil, applicant.ErrEmptySelection
	}
	return &lifecycle.EmailResult{Message: "Sent", BulkResult: notification.BulkResult{Successful: len(ids)}}, nil
}

func (m *MockService) SendBulkAcceptance(_ context.Context, ids []string) (*lifecycle.EmailResult, error) {
	return m.emails(ids)
}

func (m *MockService) SendBulkRejection(_ context.Context, ids []string) (*lifecycle.EmailResult, error) {
	return m.emails(ids)
}

func (m *MockService) SendDuplicateWarning(_ context.Context, ids []string) (*lifecycle.EmailResult, error) {
	return m.emails(ids)
}

func (m *MockService) SendIdentityWarning(_ context.Context, ids []string) (*lifecycle.EmailResult, error) {
	return m.emails(ids)
}

var _ = Describe("Lifecycle Handler", func() {
	var (
		service *MockService
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = &MockService{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := lifecycle.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Put("/applicants/{id}/stage", handler.SetStage)
		router.Post("/applicants/{id}/offer", handler.SendOffer)
		router.Post("/applicants/{id}/offer/respond", handler.RespondToOffer)
		router.Post("/applicants/bulk-accept", handler.BulkAccept)
		router.Post("/applicants/merge", handler.Merge)
		router.Post("/email/duplicate-warning", handler.SendDuplicateWarning)
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(method, path, bytes.NewReader(raw))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should move a stage", func() {
		w := do(http.MethodPut, "/applicants/a1/stage", map[string]string{"stage": "shortlisted"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"stage":"shortlisted"`))
	})

	It("should report the offer answer and resulting stage", func() {
		w := do(http.MethodPost, "/applicants/a1/offer/respond", map[string]string{"response": "accepted"})
		Expect(w.Code).To(Equal(http.StatusOK))

		var body lifecycle.OfferAnsweredResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Message).To(Equal("Offer accepted successfully"))
		Expect(body.Stage).To(Equal(applicant.StageHired))
	})

	It("should map a missing offer to 400", func() {
		service.respondErr = lifecycle.ErrNoOfferSent
		w := do(http.MethodPost, "/applicants/a1/offer/respond", map[string]string{"response": "accepted"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("NO_OFFER_SENT"))
	})

	It("should pass ids and reason to bulk accept", func() {
		w := do(http.MethodPost, "/applicants/bulk-accept", map[string]interface{}{
			"applicant_ids": []string{"a", "b"},
			"reason":        "Great fit",
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(service.lastIDs).To(Equal([]string{"a", "b"}))
		Expect(service.lastReason).To(Equal("Great fit"))
	})

	It("should refuse a merge of one", func() {
		w := do(http.MethodPost, "/applicants/merge", map[string]interface{}{"applicant_ids": []string{"a"}})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should refuse an empty email selection", func() {
		w := do(http.MethodPost, "/email/duplicate-warning", map[string]interface{}{"applicant_ids": []string{}})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
