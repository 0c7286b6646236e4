package job_test

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
	notificationDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/notification"
	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	jobPostgres "github.com/frahmantamala/smart-recruiter/internal/job/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	notificationPostgres "github.com/frahmantamala/smart-recruiter/internal/notification/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestJob(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Job Suite")
}

type MockPublisher struct {
	events []events.Event
	err    error
}

func (m *MockPublisher) Publish(_ context.Context, e events.Event) error {
	m.events = append(m.events, e)
	return m.err
}

var _ = Describe("Job Service", func() {
	var (
		db         *gorm.DB
		ctx        context.Context
		applicants *applicant.Service
		publisher  *MockPublisher
		service    *job.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(
			&jobDatamodel.Job{},
			&applicantDatamodel.Applicant{},
			&notificationDatamodel.Notification{},
		)).To(Succeed())

		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := jobPostgres.NewJobRepository(db)
		applicants = applicant.NewService(applicantPostgres.NewApplicantRepository(db), repo, slogger)
		notifier := notification.NewService(notificationPostgres.NewNotificationRepository(db), nil, slogger)
		publisher = &MockPublisher{}
		service = job.NewService(repo, applicants, notifier, publisher, slogger)
	})

	Describe("Create", func() {
		It("should default the status to open", func() {
			j, err := service.Create(ctx, job.CreateJobRequest{Title: "Backend Engineer"})
			Expect(err).NotTo(HaveOccurred())
			Expect(j.Status).To(Equal(job.StatusOpen))
			Expect(j.ID).NotTo(BeEmpty())
		})

		It("should require a title", func() {
			_, err := service.Create(ctx, job.CreateJobRequest{Title: "  "})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})

		It("should reject an unknown status", func() {
			_, err := service.Create(ctx, job.CreateJobRequest{Title: "Designer", Status: "paused"})
			Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("should filter by status", func() {
			_, _ = service.Create(ctx, job.CreateJobRequest{Title: "A"})
			_, _ = service.Create(ctx, job.CreateJobRequest{Title: "B", Status: "draft"})

			open, err := service.List(ctx, "open")
			Expect(err).NotTo(HaveOccurred())
			Expect(open).To(HaveLen(1))
			Expect(open[0].Title).To(Equal("A"))

			all, _ := service.List(ctx, "")
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		It("should change only the fields given", func() {
			j, _ := service.Create(ctx, job.CreateJobRequest{Title: "Backend Engineer"})
			closed := "closed"

			updated, err := service.Update(ctx, j.ID, job.UpdateJobRequest{Status: &closed})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(job.StatusClosed))
			Expect(updated.Title).To(Equal("Backend Engineer"))
		})

		It("should close the job to new applicants", func() {
			j, _ := service.Create(ctx, job.CreateJobRequest{Title: "Backend Engineer"})
			closed := "closed"
			_, _ = service.Update(ctx, j.ID, job.UpdateJobRequest{Status: &closed})

			_, err := applicants.Create(ctx, applicant.CreateApplicantRequest{
				JobID: j.ID, FirstName: "Ann", LastName: "Lee", Email: "ann@x.com",
			})
			Expect(errors.Is(err, applicant.ErrJobNotOpen)).To(BeTrue())
		})

		It("should return not found for a missing job", func() {
			_, err := service.Update(ctx, "ghost", job.UpdateJobRequest{})
			Expect(errors.Is(err, job.ErrJobNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should notify applicants then remove the job and its applicants", func() {
			j, _ := service.Create(ctx, job.CreateJobRequest{Title: "Backend Engineer"})
			other, _ := service.Create(ctx, job.CreateJobRequest{Title: "Designer"})
			for _, email := range []string{"ann@x.com", "bo@x.com"} {
				_, err := applicants.Create(ctx, applicant.CreateApplicantRequest{
					JobID: j.ID, FirstName: "Ann", LastName: "Lee", Email: email,
				})
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := applicants.Create(ctx, applicant.CreateApplicantRequest{
				JobID: other.ID, FirstName: "Cy", LastName: "Ng", Email: "cy@x.com",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, j.ID)).To(Succeed())

			_, err = service.Get(ctx, j.ID)
			Expect(errors.Is(err, job.ErrJobNotFound)).To(BeTrue())
			left, _ := applicants.List(ctx, applicant.Filter{})
			Expect(left).To(HaveLen(1))
			Expect(left[0].Email).To(Equal("cy@x.com"))

			var rows []notificationDatamodel.Notification
			Expect(db.Find(&rows).Error).To(Succeed())
			Expect(rows).To(HaveLen(2))
			for _, n := range rows {
				Expect(n.Type).To(Equal(string(notification.TypeJobClosed)))
				Expect(n.Subject).To(ContainSubstring("Backend Engineer"))
			}

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeJobClosed))
		})

		It("should return not found for a missing job", func() {
			err := service.Delete(ctx, "ghost")
			Expect(errors.Is(err, job.ErrJobNotFound)).To(BeTrue())
		})

		It("should not fail when the event cannot be published", func() {
			j, _ := service.Create(ctx, job.CreateJobRequest{Title: "Backend Engineer"})
			publisher.err = errors.New("bus closed")
			Expect(service.Delete(ctx, j.ID)).To(Succeed())
		})
	})
})
