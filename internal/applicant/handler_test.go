package applicant_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	applicantPostgres "github.com/frahmantamala/smart-recruiter/internal/applicant/postgres"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Applicant Handler", func() {
	var (
		handler *applicant.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		db := newTestDB()
		open := &jobDatamodel.Job{ID: "job-open", Title: "Backend Engineer", Status: "open"}
		closed := &jobDatamodel.Job{ID: "job-closed", Title: "Designer", Status: "closed"}
		Expect(db.Create(open).Error).To(Succeed())
		Expect(db.Create(closed).Error).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		jobs := &MockJobReader{jobs: map[string]*jobDatamodel.Job{"job-open": open, "job-closed": closed}}
		service := applicant.NewService(applicantPostgres.NewApplicantRepository(db), jobs, slogger)
		handler = applicant.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/applicants", handler.ListApplicants)
		router.Post("/applicants", handler.CreateApplicant)
		router.Get("/applicants/{id}", handler.GetApplicant)
		router.Delete("/applicants/{id}", handler.DeleteApplicant)
	})

	post := func(body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/applicants", bytes.NewReader(raw))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create an applicant and fetch it back", func() {
		w := post(map[string]string{"job_id": "job-open", "first_name": "Ann", "last_name": "Lee", "email": "ann@x.com"})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created applicant.Applicant
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Stage).To(Equal(applicant.StageApplied))

		req := httptest.NewRequest(http.MethodGet, "/applicants/"+created.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should answer 400 for a closed job", func() {
		w := post(map[string]string{"job_id": "job-closed", "first_name": "Ann", "last_name": "Lee", "email": "ann@x.com"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("JOB_NOT_OPEN"))
	})

	It("should answer 404 for a missing job", func() {
		w := post(map[string]string{"job_id": "ghost", "first_name": "Ann", "last_name": "Lee", "email": "ann@x.com"})
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/applicants", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 404 when deleting an unknown applicant", func() {
		req := httptest.NewRequest(http.MethodDelete, "/applicants/ghost", nil).WithContext(context.Background())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
