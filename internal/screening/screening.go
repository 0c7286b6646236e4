package screening

import (
	"strings"
	"unicode"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
)

const (
	ColorExcellent = "#10b981"
	ColorStrong    = "#8b5cf6"
	ColorGood      = "#f59e0b"
	ColorFair      = "#64748b"
	ColorNoResume  = "#94a3b8"

	maxScore = 98
)

// titleStopwords are generic title words that say nothing about the role.
var titleStopwords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true,
	"senior": true, "junior": true, "lead": true, "staff": true, "principal": true,
	"head": true, "chief": true, "intern": true, "associate": true, "assistant": true,
	"engineer": true, "developer": true, "manager": true, "specialist": true,
	"officer": true, "executive": true, "consultant": true, "analyst": true,
}

var skillVocabulary = []string{
	"golang", "python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node", "django", "rails", "rust", "kotlin", "swift", "flutter", "android",
	"sql", "postgres", "mysql", "mongo", "redis", "kafka", "docker", "kubernetes",
	"aws", "gcp", "azure", "devops", "terraform", "linux", "graphql",
	"figma", "design", "marketing", "sales", "finance", "accounting", "data",
}

// Flags marks an applicant relative to the rest of the loaded set.
type Flags struct {
	IsDuplicate        bool `json:"is_duplicate"`
	IsIdentityConflict bool `json:"is_identity_conflict"`
}

type Match struct {
	Score int    `json:"score"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// Scorer is a read-only strategy over an applicant and the set it was loaded with.
type Scorer interface {
	Classify(a *applicant.Applicant, all []*applicant.Applicant) Flags
	Score(a *applicant.Applicant, all []*applicant.Applicant) Match
}

// RuleBasedScorer matches on the text of the resume URL.
type RuleBasedScorer struct{}

func NewRuleBasedScorer() *RuleBasedScorer {
	return &RuleBasedScorer{}
}

// Classify compares emails exactly, case included.
func (RuleBasedScorer) Classify(a *applicant.Applicant, all []*applicant.Applicant) Flags {
	var flags Flags
	resume := a.Resume()
	ownsResume := resume != "" && LocallyOwned(a)

	for _, other := range all {
		if other.ID == a.ID {
			continue
		}
		if other.Email == a.Email {
			flags.IsDuplicate = true
		}
		if resume != "" && !ownsResume && other.Resume() == resume && LocallyOwned(other) {
			flags.IsIdentityConflict = true
		}
	}
	return flags
}

func (RuleBasedScorer) Score(a *applicant.Applicant, _ []*applicant.Applicant) Match {
	resume := strings.ToLower(a.Resume())
	if resume == "" {
		return Match{Score: 0, Color: ColorNoResume, Label: "No Resume"}
	}

	score := 40
	if LocallyOwned(a) {
		score += 20
	}
	for _, kw := range TitleKeywords(a.Title()) {
		if strings.Contains(resume, kw) {
			score += 10
		}
	}
	for _, skill := range skillVocabulary {
		if strings.Contains(resume, skill) {
			score += 5
		}
	}
	score += charSum(a.ID) % 6
	if score > maxScore {
		score = maxScore
	}
	return band(score)
}

func band(score int) Match {
	switch {
	case score >= 90:
		return Match{Score: score, Color: ColorExcellent, Label: "Excellent Match"}
	case score >= 80:
		return Match{Score: score, Color: ColorStrong, Label: "Strong Match"}
	case score >= 70:
		return Match{Score: score, Color: ColorGood, Label: "Good Match"}
	default:
		return Match{Score: score, Color: ColorFair, Label: "Fair Match"}
	}
}

// LocallyOwned reports whether the resume URL carries a piece of the applicant's
// own identity: any run of three or more letters from the first name, last name
// or email local part.
func LocallyOwned(a *applicant.Applicant) bool {
	resume := strings.ToLower(a.Resume())
	if resume == "" {
		return false
	}
	for _, token := range identityTokens(a) {
		if strings.Contains(resume, token) {
			return true
		}
	}
	return false
}

// identityTokens returns every three-rune window of each identity word. Any
// longer substring contains one of them.
func identityTokens(a *applicant.Applicant) []string {
	local := a.Email
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}

	var tokens []string
	for _, raw := range []string{a.FirstName, a.LastName, local} {
		for _, word := range strings.FieldsFunc(strings.ToLower(raw), notLetterOrDigit) {
			r := []rune(word)
			for i := 0; i+3 <= len(r); i++ {
				tokens = append(tokens, string(r[i:i+3]))
			}
		}
	}
	return tokens
}

// TitleKeywords returns the lower-cased words of a job title longer than two
// characters, without generic title words.
func TitleKeywords(title string) []string {
	var out []string
	for _, word := range strings.FieldsFunc(strings.ToLower(title), notLetterOrDigit) {
		if len(word) <= 2 || titleStopwords[word] {
			continue
		}
		out = append(out, word)
	}
	return out
}

func notLetterOrDigit(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func charSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}
