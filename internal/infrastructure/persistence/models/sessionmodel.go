package models

import "time"

type SessionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"not null;index"`
	IPAddress string    `gorm:"size:45"`
	UserAgent string    `gorm:"size:255"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SessionModel) TableName() string {
	return "sessions"
}
