package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 5000

// Comment is an immutable note on a ticket with optional text and an optional photo.
type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	text      string
	photoPath string
	createdAt time.Time
}

func NewComment(ticketID, authorID uint, text, photoPath string, now time.Time) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	text = strings.TrimSpace(text)
	if text == "" && photoPath == "" {
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, fmt.Errorf("comment exceeds maximum length of %d characters", MaxCommentLength)
	}

	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		text:      text,
		photoPath: photoPath,
		createdAt: now.UTC(),
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, text, photoPath string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		text:      text,
		photoPath: photoPath,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) PhotoPath() string    { return c.photoPath }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// SetTicketID binds a comment built before its ticket was persisted.
func (c *Comment) SetTicketID(id uint) {
	c.ticketID = id
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
