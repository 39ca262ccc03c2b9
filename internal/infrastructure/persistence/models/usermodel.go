package models

import "time"

// UserModel maps the users table. created_at is nullable because older stores lack it.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    *time.Time
}

func (UserModel) TableName() string {
	return "users"
}
