package history

import "time"

type HistoryRecord struct {
	ID       string    `gorm:"column:id;primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	Email    string    `gorm:"column:email;not null"`
	JobTitle *string   `gorm:"column:job_title"`
	Status   string    `gorm:"column:status;not null"`
	Reason   *string   `gorm:"column:reason"`
	Date     time.Time `gorm:"column:date;not null"`
}

func (HistoryRecord) TableName() string {
	return "history_records"
}
