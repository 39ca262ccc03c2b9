package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "stockdesk/internal/domain/ticket/valueobjects"
)

const (
	MaxProjectNameLength     = 120
	MaxApplicantNameLength   = 120
	MaxApplicantPhoneLength  = 40
	MaxPickupRecipientLength = 120
)

// Ticket is a material request. Status and the pickup/closed timestamps change only through ChangeStatus.
type Ticket struct {
	id              uint
	projectName     string
	applicantName   string
	applicantPhone  string
	status          vo.TicketStatus
	creatorID       uint
	createdAt       time.Time
	pickupAt        *time.Time
	pickupRecipient string
	pickupProofPath string
	closedAt        *time.Time
}

func NewTicket(projectName, applicantName, applicantPhone string, creatorID uint, now time.Time) (*Ticket, error) {
	projectName = strings.TrimSpace(projectName)
	applicantName = strings.TrimSpace(applicantName)
	applicantPhone = strings.TrimSpace(applicantPhone)

	if err := requireText("project name", projectName, MaxProjectNameLength); err != nil {
		return nil, err
	}
	if err := requireText("applicant name", applicantName, MaxApplicantNameLength); err != nil {
		return nil, err
	}
	if err := requireText("applicant phone", applicantPhone, MaxApplicantPhoneLength); err != nil {
		return nil, err
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		projectName:    projectName,
		applicantName:  applicantName,
		applicantPhone: applicantPhone,
		status:         vo.StatusNew,
		creatorID:      creatorID,
		createdAt:      now.UTC(),
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence without re-running creation rules.
func ReconstructTicket(
	id uint,
	projectName, applicantName, applicantPhone string,
	status vo.TicketStatus,
	creatorID uint,
	createdAt time.Time,
	pickupAt *time.Time,
	pickupRecipient, pickupProofPath string,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:              id,
		projectName:     projectName,
		applicantName:   applicantName,
		applicantPhone:  applicantPhone,
		status:          status,
		creatorID:       creatorID,
		createdAt:       createdAt,
		pickupAt:        pickupAt,
		pickupRecipient: pickupRecipient,
		pickupProofPath: pickupProofPath,
		closedAt:        closedAt,
	}, nil
}

func requireText(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s exceeds maximum length of %d characters", field, max)
	}
	return nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) ProjectName() string     { return t.projectName }
func (t *Ticket) ApplicantName() string   { return t.applicantName }
func (t *Ticket) ApplicantPhone() string  { return t.applicantPhone }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) CreatorID() uint         { return t.creatorID }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) PickupRecipient() string { return t.pickupRecipient }
func (t *Ticket) PickupProofPath() string { return t.pickupProofPath }

func (t *Ticket) PickupAt() *time.Time {
	return copyTime(t.pickupAt)
}

func (t *Ticket) ClosedAt() *time.Time {
	return copyTime(t.closedAt)
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// RecordPickup attaches who collected the material and an optional proof file.
// It is only valid once the pickup has been stamped.
func (t *Ticket) RecordPickup(recipient, proofPath string) error {
	if t.pickupAt == nil {
		return fmt.Errorf("ticket %d has no recorded pickup", t.id)
	}
	recipient = strings.TrimSpace(recipient)
	if utf8.RuneCountInString(recipient) > MaxPickupRecipientLength {
		return fmt.Errorf("pickup recipient exceeds maximum length of %d characters", MaxPickupRecipientLength)
	}
	if recipient != "" {
		t.pickupRecipient = recipient
	}
	if proofPath != "" {
		t.pickupProofPath = proofPath
	}
	return nil
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
