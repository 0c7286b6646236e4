package screening

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
)

type ApplicantLister interface {
	List(ctx context.Context, filter applicant.Filter) ([]*applicant.Applicant, error)
}

// Annotated is an applicant with the advisory screening result attached.
type Annotated struct {
	*applicant.Applicant
	Flags
	Match Match `json:"match"`
}

type Service struct {
	applicants ApplicantLister
	scorer     Scorer
	logger     *slog.Logger
}

func NewService(applicants ApplicantLister, scorer Scorer, logger *slog.Logger) *Service {
	return &Service{
		applicants: applicants,
		scorer:     scorer,
		logger:     logger,
	}
}

// Screen loads the active set (optionally for one job) and annotates every
// applicant against it, best match first. Nothing is persisted.
func (s *Service) Screen(ctx context.Context, jobID string) ([]Annotated, error) {
	all, err := s.applicants.List(ctx, applicant.Filter{JobID: jobID})
	if err != nil {
		return nil, err
	}
	return Annotate(s.scorer, all), nil
}

func Annotate(scorer Scorer, all []*applicant.Applicant) []Annotated {
	out := make([]Annotated, 0, len(all))
	for _, a := range all {
		out = append(out, Annotated{
			Applicant: a,
			Flags:     scorer.Classify(a, all),
			Match:     scorer.Score(a, all),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.Score > out[j].Match.Score
	})
	return out
}
