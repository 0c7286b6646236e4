package screening_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/screening"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScreening(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Screening Suite")
}

func candidate(id, first, last, email, resume, title string) *applicant.Applicant {
	a := &applicant.Applicant{ID: id, FirstName: first, LastName: last, Email: email}
	if resume != "" {
		a.ResumeURL = &resume
	}
	if title != "" {
		a.JobTitle = &title
	}
	return a
}

var _ = Describe("RuleBasedScorer", func() {
	scorer := screening.NewRuleBasedScorer()

	Describe("Classify", func() {
		It("should flag both applicants sharing an email and not a third", func() {
			a := candidate("1", "Ann", "Lee", "ann@x.com", "", "")
			b := candidate("2", "Anna", "Lee", "ann@x.com", "", "")
			c := candidate("3", "Bo", "Kim", "bo@x.com", "", "")
			all := []*applicant.Applicant{a, b, c}

			Expect(scorer.Classify(a, all).IsDuplicate).To(BeTrue())
			Expect(scorer.Classify(b, all).IsDuplicate).To(BeTrue())
			Expect(scorer.Classify(c, all).IsDuplicate).To(BeFalse())
		})

		It("should compare emails case-sensitively", func() {
			a := candidate("1", "Ann", "Lee", "ann@x.com", "", "")
			b := candidate("2", "Ann", "Lee", "ANN@x.com", "", "")
			Expect(scorer.Classify(a, []*applicant.Applicant{a, b}).IsDuplicate).To(BeFalse())
		})

		It("should flag a borrowed resume as an identity conflict", func() {
			owner := candidate("1", "Ann", "Lee", "ann@x.com", "https://cdn/ann-lee-cv.pdf", "")
			borrower := candidate("2", "Bob", "Kim", "bob@y.com", "https://cdn/ann-lee-cv.pdf", "")
			all := []*applicant.Applicant{owner, borrower}

			Expect(scorer.Classify(borrower, all).IsIdentityConflict).To(BeTrue())
			Expect(scorer.Classify(owner, all).IsIdentityConflict).To(BeFalse())
		})

		It("should flag a borrowed resume owned through a name suffix", func() {
			owner := candidate("1", "Xi", "Robertson", "q@x.com", "https://cdn/ertson-cv.pdf", "")
			borrower := candidate("2", "Bob", "Kim", "bob@y.com", "https://cdn/ertson-cv.pdf", "")
			all := []*applicant.Applicant{owner, borrower}

			Expect(scorer.Classify(borrower, all).IsIdentityConflict).To(BeTrue())
			Expect(scorer.Classify(owner, all).IsIdentityConflict).To(BeFalse())
		})

		It("should not flag a shared resume nobody owns", func() {
			a := candidate("1", "Ann", "Lee", "ann@x.com", "https://cdn/cv.pdf", "")
			b := candidate("2", "Bob", "Kim", "bob@y.com", "https://cdn/cv.pdf", "")
			Expect(scorer.Classify(b, []*applicant.Applicant{a, b}).IsIdentityConflict).To(BeFalse())
		})
	})

	Describe("LocallyOwned", func() {
		It("should match on the email local part", func() {
			a := candidate("1", "Xi", "Li", "jdoe99@x.com", "https://files/jdoe_resume.pdf", "")
			Expect(screening.LocallyOwned(a)).To(BeTrue())
		})

		It("should match a piece from the middle or end of a name", func() {
			a := candidate("1", "Xi", "Robertson", "q@x.com", "https://cdn/ertson-cv.pdf", "")
			Expect(screening.LocallyOwned(a)).To(BeTrue())

			b := candidate("2", "Kate", "Doe", "kd@x.com", "https://files/resume-atelier.pdf", "")
			Expect(screening.LocallyOwned(b)).To(BeTrue())
		})

		It("should ignore names shorter than three letters", func() {
			a := candidate("1", "Xi", "Li", "xi@x.com", "https://files/xili.pdf", "")
			Expect(screening.LocallyOwned(a)).To(BeFalse())
		})
	})

	Describe("Score", func() {
		It("should give zero without a resume", func() {
			m := scorer.Score(candidate("1", "Ann", "Lee", "ann@x.com", "", ""), nil)
			Expect(m).To(Equal(screening.Match{Score: 0, Color: screening.ColorNoResume, Label: "No Resume"}))
		})

		It("should add ownership, title and skill points", func() {
			// "a" sums to 97, so the offset is 1
			a := candidate("a", "Ann", "Lee", "ann@x.com", "https://cdn/ann-backend-golang.pdf", "Backend Engineer")
			m := scorer.Score(a, nil)
			Expect(m.Score).To(Equal(40 + 20 + 10 + 5 + 1))
			Expect(m.Label).To(Equal("Good Match"))
			Expect(m.Color).To(Equal(screening.ColorGood))
		})

		It("should cap at 98", func() {
			resume := "https://cdn/ann-backend-platform-golang-python-docker-kubernetes-aws-sql-react.pdf"
			a := candidate("a", "Ann", "Lee", "ann@x.com", resume, "Backend Platform Engineer")
			m := scorer.Score(a, nil)
			Expect(m.Score).To(Equal(98))
			Expect(m.Label).To(Equal("Excellent Match"))
		})

		It("should band low scores as fair", func() {
			a := candidate("a", "Ann", "Lee", "ann@x.com", "https://cdn/cv.pdf", "")
			m := scorer.Score(a, nil)
			Expect(m.Score).To(Equal(41))
			Expect(m.Label).To(Equal("Fair Match"))
		})

		It("should be deterministic", func() {
			a := candidate("3f2a", "Ann", "Lee", "ann@x.com", "https://cdn/ann.pdf", "Designer")
			all := []*applicant.Applicant{a}
			Expect(scorer.Score(a, all)).To(Equal(scorer.Score(a, all)))
		})
	})

	It("should drop generic words from title keywords", func() {
		Expect(screening.TitleKeywords("Senior Backend Engineer (Go)")).To(Equal([]string{"backend"}))
	})
})

type MockLister struct {
	applicants []*applicant.Applicant
	err        error
	lastFilter applicant.Filter
}

func (m *MockLister) List(_ context.Context, filter applicant.Filter) ([]*applicant.Applicant, error) {
	m.lastFilter = filter
	return m.applicants, m.err
}

var _ = Describe("Screening Service", func() {
	var (
		lister  *MockLister
		service *screening.Service
	)

	BeforeEach(func() {
		lister = &MockLister{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = screening.NewService(lister, screening.NewRuleBasedScorer(), logger)
	})

	It("should annotate the job's applicants best match first", func() {
		lister.applicants = []*applicant.Applicant{
			candidate("a", "Ann", "Lee", "ann@x.com", "", ""),
			candidate("b", "Bo", "Kim", "bok@x.com", "https://cdn/bok.pdf", ""),
		}

		out, err := service.Screen(context.Background(), "job-1")

		Expect(err).NotTo(HaveOccurred())
		Expect(lister.lastFilter.JobID).To(Equal("job-1"))
		Expect(out).To(HaveLen(2))
		Expect(out[0].ID).To(Equal("b"))
		Expect(out[1].Match.Label).To(Equal("No Resume"))
	})

	It("should pass store errors through", func() {
		lister.err = errors.New("db down")
		_, err := service.Screen(context.Background(), "")
		Expect(err).To(MatchError("db down"))
	})
})
