package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// validTransitions defines the state machine for booking status transitions.
// Completed and cancelled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsActive returns true if a booking in this status holds its calendar slot.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ActiveStatuses returns the statuses that hold a calendar slot.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusConfirmed}
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
