package applicant_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	applicantPostgres "github.com/frahmantamala/smart-recruiter/internal/applicant/postgres"
	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestApplicant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Applicant Suite")
}

type MockJobReader struct {
	jobs      map[string]*jobDatamodel.Job
	failError error
}

func (m *MockJobReader) GetByID(_ context.Context, id string) (*jobDatamodel.Job, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.jobs[id], nil
}

func newTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())
	Expect(db.AutoMigrate(&jobDatamodel.Job{}, &applicantDatamodel.Applicant{})).To(Succeed())
	return db
}

var _ = Describe("Applicant Service", func() {
	var (
		db      *gorm.DB
		jobs    *MockJobReader
		service *applicant.Service
		ctx     context.Context
	)

	validRequest := func() applicant.CreateApplicantRequest {
		return applicant.CreateApplicantRequest{
			JobID:     "job-open",
			FirstName: "Ann",
			LastName:  "Lee",
			Email:     "ann@x.com",
		}
	}

	countRows := func() int64 {
		var n int64
		db.Model(&applicantDatamodel.Applicant{}).Count(&n)
		return n
	}

	BeforeEach(func() {
		db = newTestDB()
		open := &jobDatamodel.Job{ID: "job-open", Title: "Backend Engineer", Status: "open"}
		closed := &jobDatamodel.Job{ID: "job-closed", Title: "Designer", Status: "closed"}
		Expect(db.Create(open).Error).To(Succeed())
		Expect(db.Create(closed).Error).To(Succeed())

		jobs = &MockJobReader{jobs: map[string]*jobDatamodel.Job{"job-open": open, "job-closed": closed}}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = applicant.NewService(applicantPostgres.NewApplicantRepository(db), jobs, slogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should create an applied, active applicant with no offer", func() {
			a, err := service.Create(ctx, validRequest())

			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).NotTo(BeEmpty())
			Expect(a.Stage).To(Equal(applicant.StageApplied))
			Expect(a.Status).To(Equal(applicant.StatusActive))
			Expect(a.OfferStatus).To(BeNil())
			Expect(a.OfferSentAt).To(BeNil())
			Expect(a.Title()).To(Equal("Backend Engineer"))
		})

		It("should reject a closed job with a validation error and write nothing", func() {
			req := validRequest()
			req.JobID = "job-closed"

			_, err := service.Create(ctx, req)

			Expect(errors.Is(err, applicant.ErrJobNotOpen)).To(BeTrue())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(countRows()).To(BeZero())
		})

		It("should return not found for a missing job", func() {
			req := validRequest()
			req.JobID = "nope"

			_, err := service.Create(ctx, req)
			Expect(errors.Is(err, applicant.ErrJobNotFound)).To(BeTrue())
		})

		It("should reject malformed email", func() {
			req := validRequest()
			req.Email = "ann at x"

			_, err := service.Create(ctx, req)

			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
			Expect(err.Error()).To(Equal("Invalid email format"))
			Expect(countRows()).To(BeZero())
		})

		It("should require the identifying fields", func() {
			_, err := service.Create(ctx, applicant.CreateApplicantRequest{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			details := appErr.Details.(internal.ValidationErrors)
			fields := []string{}
			for _, d := range details.Errors {
				fields = append(fields, d.Field)
			}
			Expect(fields).To(ConsistOf("job_id", "first_name", "last_name", "email"))
		})
	})

	Describe("Update", func() {
		It("should change only supplied fields", func() {
			a, err := service.Create(ctx, validRequest())
			Expect(err).NotTo(HaveOccurred())

			phone := "555-0101"
			updated, err := service.Update(ctx, a.ID, applicant.UpdateApplicantRequest{Phone: &phone})

			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Phone).To(Equal("555-0101"))
			Expect(updated.FirstName).To(Equal("Ann"))
			Expect(updated.UpdatedAt).To(BeTemporally(">=", a.UpdatedAt))
		})

		It("should reject an unknown stage", func() {
			a, _ := service.Create(ctx, validRequest())
			stage := "interviewing"

			_, err := service.Update(ctx, a.ID, applicant.UpdateApplicantRequest{Stage: &stage})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("should not blank out identifying fields", func() {
			a, err := service.Create(ctx, validRequest())
			Expect(err).NotTo(HaveOccurred())
			empty := ""
			spaces := "  "

			_, err = service.Update(ctx, a.ID, applicant.UpdateApplicantRequest{Email: &empty})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			_, err = service.Update(ctx, a.ID, applicant.UpdateApplicantRequest{FirstName: &spaces})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			stored, err := service.Get(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email).To(Equal(a.Email))
			Expect(stored.FirstName).To(Equal("Ann"))
		})

		It("should return not found for a missing applicant", func() {
			_, err := service.Update(ctx, "nope", applicant.UpdateApplicantRequest{})
			Expect(errors.Is(err, applicant.ErrApplicantNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should delete once and then report not found", func() {
			a, _ := service.Create(ctx, validRequest())

			Expect(service.Delete(ctx, a.ID)).To(Succeed())
			Expect(errors.Is(service.Delete(ctx, a.ID), applicant.ErrApplicantNotFound)).To(BeTrue())
		})
	})

	Describe("GetMany", func() {
		It("should keep the requested order and skip unknown ids", func() {
			first, _ := service.Create(ctx, validRequest())
			req := validRequest()
			req.Email = "bo@x.com"
			second, _ := service.Create(ctx, req)

			got, err := service.GetMany(ctx, []string{second.ID, "ghost", first.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			Expect(got[0].ID).To(Equal(second.ID))
			Expect(got[1].ID).To(Equal(first.ID))
		})

		It("should reject an empty selection", func() {
			_, err := service.GetMany(ctx, nil)
			Expect(errors.Is(err, applicant.ErrEmptySelection)).To(BeTrue())
		})
	})

	Describe("BulkUpdateStage", func() {
		It("should move every listed applicant", func() {
			a, _ := service.Create(ctx, validRequest())
			req := validRequest()
			req.Email = "bo@x.com"
			b, _ := service.Create(ctx, req)

			n, err := service.BulkUpdateStage(ctx, []string{a.ID, b.ID}, "shortlisted")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			list, _ := service.List(ctx, applicant.Filter{Stage: "shortlisted"})
			Expect(list).To(HaveLen(2))
		})

		It("should require ids and a valid stage", func() {
			_, err := service.BulkUpdateStage(ctx, nil, "hired")
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())

			_, err = service.BulkUpdateStage(ctx, []string{"x"}, "promoted")
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})
	})
})
