// Package pickup tracks the in-store retrieval lifecycle of a placed order.
package pickup

import "time"

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusScheduled  Status = "scheduled"
	StatusCheckedIn  Status = "checked-in"
	StatusComplete   Status = "complete"
)

// ParseStatus maps a stored status string back to a Status. Unknown strings
// map to StatusIncomplete so a corrupt row degrades to the initial state.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusIncomplete, StatusScheduled, StatusCheckedIn, StatusComplete:
		return Status(s)
	}
	return StatusIncomplete
}

// Transitions move forward only: incomplete -> scheduled -> checked-in ->
// complete, with cancellation resetting scheduled/checked-in back to
// incomplete. Complete is terminal and is produced by store-side fulfillment,
// never by this service.

// CanSchedule reports whether scheduling (or re-scheduling) is allowed.
// Re-scheduling an already-scheduled pickup overwrites the slot.
func (s Status) CanSchedule() bool {
	return s == StatusIncomplete || s == StatusScheduled
}

func (s Status) CanCheckIn() bool {
	return s == StatusScheduled
}

func (s Status) CanCancel() bool {
	return s == StatusScheduled || s == StatusCheckedIn
}

type Pickup struct {
	ConversationID string
	OrderID        string
	Status         Status
	StoreAddress   string
	Time           *time.Time
}

// New returns the initial pickup created when an order is placed.
func New(conversationID, orderID string) Pickup {
	return Pickup{
		ConversationID: conversationID,
		OrderID:        orderID,
		Status:         StatusIncomplete,
	}
}
