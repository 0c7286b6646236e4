package job_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	applicantPostgres "github.com/frahmantamala/smart-recruiter/internal/applicant/postgres"
	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	notificationDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/notification"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	jobPostgres "github.com/frahmantamala/smart-recruiter/internal/job/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	notificationPostgres "github.com/frahmantamala/smart-recruiter/internal/notification/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Job Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&jobDatamodel.Job{}, &applicantDatamodel.Applicant{}, &notificationDatamodel.Notification{})).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := jobPostgres.NewJobRepository(db)
		applicants := applicant.NewService(applicantPostgres.NewApplicantRepository(db), repo, slogger)
		notifier := notification.NewService(notificationPostgres.NewNotificationRepository(db), nil, slogger)
		service := job.NewService(repo, applicants, notifier, nil, slogger)
		handler := job.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/jobs", handler.ListJobs)
		router.Post("/jobs", handler.CreateJob)
		router.Get("/jobs/{id}", handler.GetJob)
		router.Put("/jobs/{id}", handler.UpdateJob)
		router.Delete("/jobs/{id}", handler.DeleteJob)
	})

	serve := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create, update and delete a job", func() {
		w := serve(http.MethodPost, "/jobs", map[string]string{"title": "Backend Engineer"})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created job.Job
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Status).To(Equal(job.StatusOpen))

		w = serve(http.MethodPut, "/jobs/"+created.ID, map[string]string{"location": "Remote"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"location":"Remote"`))

		w = serve(http.MethodDelete, "/jobs/"+created.ID, nil)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = serve(http.MethodGet, "/jobs/"+created.ID, nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for a missing title", func() {
		w := serve(http.MethodPost, "/jobs", map[string]string{"department": "Eng"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 400 for an unknown status filter", func() {
		w := serve(http.MethodGet, "/jobs?status=paused", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
