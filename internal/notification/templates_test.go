package notification_test

import (
	"time"

	"github.com/frahmantamala/smart-recruiter/internal/notification"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Email templates", func() {
	ann := notification.Recipient{
		ApplicantID: "a-1",
		Email:       "ann@x.com",
		FirstName:   "Ann",
		LastName:    "Lee",
		JobTitle:    "Backend Engineer",
		AppliedAt:   time.Now().Add(-72 * time.Hour),
	}

	It("should build the acceptance subject from the job title", func() {
		msg := notification.AcceptanceEmail(ann)
		Expect(msg.Subject).To(Equal("Congratulations! You've been accepted for Backend Engineer"))
		Expect(msg.HTML).To(ContainSubstring("Congratulations Ann!"))
	})

	It("should build the rejection subject", func() {
		Expect(notification.RejectionEmail(ann).Subject).To(Equal("Application Update: Backend Engineer"))
	})

	It("should use fixed subjects for warnings", func() {
		Expect(notification.DuplicateWarningEmail(ann).Subject).To(Equal("WARNING: Duplicate Applications Detected"))
		Expect(notification.IdentityWarningEmail(ann).Subject).To(Equal("URGENT: Resume Identity Verification Required"))
	})

	It("should link the offer to the candidate status page", func() {
		msg := notification.OfferEmail("http://localhost:3000/", ann, notification.OfferDetails{
			Salary:      "$100k",
			JoiningDate: "2025-01-01",
		})
		Expect(msg.Subject).To(Equal("Job Offer from Smart-Cruiter"))
		Expect(msg.HTML).To(ContainSubstring(`href="http://localhost:3000/candidate/applications/a-1/status"`))
		Expect(msg.HTML).To(ContainSubstring("January 1, 2025"))
		Expect(msg.HTML).NotTo(ContainSubstring("Benefits"))
	})

	It("should strip markup from free text", func() {
		msg := notification.OfferEmail("http://localhost:3000", ann, notification.OfferDetails{
			Salary:      "$100k",
			JoiningDate: "soon",
			Notes:       `<script>alert(1)</script>Gym membership`,
		})
		Expect(msg.HTML).NotTo(ContainSubstring("<script>"))
		Expect(msg.HTML).To(ContainSubstring("Gym membership"))
	})

	It("should mention when the candidate applied in the closure email", func() {
		msg := notification.JobClosedEmail("Backend Engineer")(ann)
		Expect(msg.Subject).To(Equal("Update on your application for Backend Engineer"))
		Expect(msg.HTML).To(ContainSubstring("3 days ago"))
	})
})
