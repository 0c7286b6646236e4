package job

import "time"

type Job struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:title;not null"`
	Department   *string   `gorm:"column:department"`
	Location     *string   `gorm:"column:location"`
	Type         *string   `gorm:"column:type"`
	Description  *string   `gorm:"column:description"`
	Requirements *string   `gorm:"column:requirements"`
	Status       string    `gorm:"column:status;not null;default:open"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Job) TableName() string {
	return "jobs"
}
