package valueobjects

import "fmt"

// TicketStatus is the stored status code of a ticket.
type TicketStatus string

const (
	StatusNew               TicketStatus = "new"
	StatusInProgress        TicketStatus = "in_progress"
	StatusAwaitingMaterials TicketStatus = "awaiting_materials"
	StatusReadyForPickup    TicketStatus = "ready_for_pickup"
	StatusPickedUp          TicketStatus = "picked_up"
	StatusClosed            TicketStatus = "closed"
)

// AllStatuses is the informal progression order, used for select boxes and filters.
var AllStatuses = []TicketStatus{
	StatusNew,
	StatusInProgress,
	StatusAwaitingMaterials,
	StatusReadyForPickup,
	StatusPickedUp,
	StatusClosed,
}

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:               true,
	StatusInProgress:        true,
	StatusAwaitingMaterials: true,
	StatusReadyForPickup:    true,
	StatusPickedUp:          true,
	StatusClosed:            true,
}

// legacyLabels are the display labels older deployments stored in the status column.
var legacyLabels = map[string]TicketStatus{
	"Новая":              StatusNew,
	"В работе":           StatusInProgress,
	"Ожидает материалов": StatusAwaitingMaterials,
	"Готово к выдаче":    StatusReadyForPickup,
	"Материал забран":    StatusPickedUp,
	"Закрыта":            StatusClosed,
}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	return validTicketStatuses[s]
}

func (s TicketStatus) IsClosed() bool {
	return s == StatusClosed
}

func (s TicketStatus) IsPickedUp() bool {
	return s == StatusPickedUp
}

// IsTerminal reports statuses after which the ticket carries a closed timestamp.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusPickedUp
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}

// ParseStoredStatus accepts a status code or a legacy display label.
func ParseStoredStatus(s string) (TicketStatus, error) {
	if status, ok := legacyLabels[s]; ok {
		return status, nil
	}
	return NewTicketStatus(s)
}

// LegacyLabels returns a copy of the label to code table.
func LegacyLabels() map[string]TicketStatus {
	out := make(map[string]TicketStatus, len(legacyLabels))
	for k, v := range legacyLabels {
		out[k] = v
	}
	return out
}
