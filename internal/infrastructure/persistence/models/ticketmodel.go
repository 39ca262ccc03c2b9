package models

import "time"

// TicketModel maps the tickets table. Nullable columns are pointers so rows
// written by earlier versions load without conversion errors.
type TicketModel struct {
	ID              uint      `gorm:"primaryKey"`
	ProjectName     string    `gorm:"size:120;not null"`
	ApplicantName   string    `gorm:"size:120;not null"`
	ApplicantPhone  string    `gorm:"size:40;not null"`
	Status          string    `gorm:"size:30;not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
	PickupAt        *time.Time
	PickupRecipient *string `gorm:"size:120"`
	PickupProofPath *string `gorm:"size:255"`
	ClosedAt        *time.Time
	CreatedByID     *uint `gorm:"column:created_by_id;index"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;index"`
	AuthorID  *uint     `gorm:"index"`
	Text      *string   `gorm:"type:text"`
	PhotoPath *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}
