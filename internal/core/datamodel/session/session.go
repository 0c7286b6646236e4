package session

import (
	"time"

	"gorm.io/datatypes"
)

type HRUser struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	Name         string    `gorm:"column:name;not null"`
	RoleTitle    *string   `gorm:"column:role_title"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (HRUser) TableName() string {
	return "hr_users"
}

type HRSession struct {
	ID         string         `gorm:"column:id;primaryKey"`
	UserID     string         `gorm:"column:user_id;not null;index"`
	Email      string         `gorm:"column:email;not null"`
	Name       string         `gorm:"column:name;not null"`
	LoginTime  time.Time      `gorm:"column:login_time;not null"`
	LogoutTime *time.Time     `gorm:"column:logout_time"`
	Actions    datatypes.JSON `gorm:"column:actions"`
}

func (HRSession) TableName() string {
	return "hr_sessions"
}
