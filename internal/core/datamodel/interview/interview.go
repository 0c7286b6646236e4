package interview

import "time"

type Interview struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ApplicantID string    `gorm:"column:applicant_id;not null;index"`
	JobID       string    `gorm:"column:job_id;not null;index"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null"`
	Type        string    `gorm:"column:type;not null;default:online"`
	MeetingLink *string   `gorm:"column:meeting_link"`
	Notes       *string   `gorm:"column:notes"`
	Status      string    `gorm:"column:status;not null;default:scheduled"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Interview) TableName() string {
	return "interviews"
}

type InterviewDetail struct {
	Interview
	FirstName *string `gorm:"column:first_name"`
	LastName  *string `gorm:"column:last_name"`
	Email     *string `gorm:"column:email"`
	JobTitle  *string `gorm:"column:job_title"`
}
