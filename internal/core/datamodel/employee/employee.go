package employee

import "time"

type Employee struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ApplicantID *string   `gorm:"column:applicant_id"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;not null;uniqueIndex"`
	JobTitle    *string   `gorm:"column:job_title"`
	Department  *string   `gorm:"column:department"`
	HiredDate   time.Time `gorm:"column:hired_date"`
	Status      string    `gorm:"column:status;not null;default:active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
