package ticket

import (
	"errors"
	"fmt"
	"time"

	"stockdesk/internal/domain/permission"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
)

// ErrStatusChangeDenied is returned when the acting role may not change status.
var ErrStatusChangeDenied = errors.New("role is not allowed to change ticket status")

// Transition describes what a ChangeStatus call did.
type Transition struct {
	From          vo.TicketStatus
	Requested     vo.TicketStatus
	To            vo.TicketStatus
	PickupStamped bool
	CloseStamped  bool
}

// ChangeStatus applies a requested status on behalf of role at time now.
//
// Requesting picked_up records the pickup and closes the ticket in one step:
// the stored status becomes closed and pickup_at and closed_at are both set to now.
// Requesting closed sets closed_at only if it is still empty. Any other status is
// stored as given and no timestamp moves. Repeating the current status is allowed.
// On error the ticket is left untouched.
func (t *Ticket) ChangeStatus(requested vo.TicketStatus, role uservo.Role, now time.Time) (Transition, error) {
	if !permission.Allows(role, permission.ChangeStatus) {
		return Transition{}, ErrStatusChangeDenied
	}
	if !requested.IsValid() {
		return Transition{}, fmt.Errorf("invalid status: %s", requested)
	}

	now = now.UTC()
	tr := Transition{From: t.status, Requested: requested}

	switch requested {
	case vo.StatusPickedUp:
		t.status = vo.StatusClosed
		t.pickupAt = &now
		closedAt := now
		t.closedAt = &closedAt
		tr.PickupStamped = true
		tr.CloseStamped = true
	case vo.StatusClosed:
		t.status = vo.StatusClosed
		if t.closedAt == nil {
			t.closedAt = &now
			tr.CloseStamped = true
		}
	default:
		t.status = requested
	}

	tr.To = t.status
	return tr, nil
}
