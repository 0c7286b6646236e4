package notification

import "time"

type Notification struct {
	ID             string    `gorm:"column:id;primaryKey"`
	RecipientEmail string    `gorm:"column:recipient_email;not null;index"`
	Subject        string    `gorm:"column:subject;not null"`
	Message        string    `gorm:"column:message;not null"`
	Type           string    `gorm:"column:type;not null;default:email"`
	IsRead         bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
