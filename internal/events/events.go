package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents is the topic all booking lifecycle events land on.
const TopicBookingEvents = "rental.booking.events"

// Event types published by the rental service.
const (
	BookingCreated       = "rental.booking.created"
	BookingStatusChanged = "rental.booking.status_changed"
)

// BookingCreatedEvent is published when a reservation commits.
type BookingCreatedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	RenterID    uuid.UUID `json:"renter_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published on every lifecycle transition.
type BookingStatusChangedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	ActorID     uuid.UUID `json:"actor_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
