package applicant

import "time"

type Applicant struct {
	ID               string     `gorm:"column:id;primaryKey"`
	JobID            string     `gorm:"column:job_id;not null;index"`
	FirstName        string     `gorm:"column:first_name;not null"`
	LastName         string     `gorm:"column:last_name;not null"`
	Email            string     `gorm:"column:email;not null"`
	Phone            *string    `gorm:"column:phone"`
	ResumeURL        *string    `gorm:"column:resume_url"`
	CoverLetter      *string    `gorm:"column:cover_letter"`
	Stage            string     `gorm:"column:stage;not null;default:applied;index"`
	Status           string     `gorm:"column:status;not null;default:active"`
	AppliedAt        time.Time  `gorm:"column:applied_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
	OfferSalary      *string    `gorm:"column:offer_salary"`
	OfferJoiningDate *string    `gorm:"column:offer_joining_date"`
	OfferNotes       *string    `gorm:"column:offer_notes"`
	OfferRules       *string    `gorm:"column:offer_rules"`
	OfferStatus      *string    `gorm:"column:offer_status"`
	OfferSentAt      *time.Time `gorm:"column:offer_sent_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// ApplicantWithJob is the read shape of an applicant joined with its job title.
type ApplicantWithJob struct {
	Applicant
	JobTitle *string `gorm:"column:job_title"`
}
