package booking

import (
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Booking is the aggregate root for the reservation domain. A booking holds a
// calendar slot on one piece of equipment while its status is active.
type Booking struct {
	id          uuid.UUID
	equipmentID uuid.UUID
	renterID    uuid.UUID
	interval    Interval
	totalPrice  float64
	status      BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new pending booking. The total price is derived once
// here and never recomputed afterwards.
func NewBooking(equipmentID, renterID uuid.UUID, interval Interval, totalPrice float64) (*Booking, error) {
	if equipmentID == uuid.Nil {
		return nil, domain.NewValidationError("equipment ID is required")
	}
	if renterID == uuid.Nil {
		return nil, domain.NewValidationError("renter ID is required")
	}
	if totalPrice < 0 {
		return nil, domain.NewValidationError("total price cannot be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:          uuid.New(),
		equipmentID: equipmentID,
		renterID:    renterID,
		interval:    interval,
		totalPrice:  totalPrice,
		status:      StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	equipmentID uuid.UUID,
	renterID uuid.UUID,
	interval Interval,
	totalPrice float64,
	status BookingStatus,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		equipmentID: equipmentID,
		renterID:    renterID,
		interval:    interval,
		totalPrice:  totalPrice,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// EquipmentID returns the booked equipment's identifier.
func (b *Booking) EquipmentID() uuid.UUID { return b.equipmentID }

// RenterID returns the renter's user ID.
func (b *Booking) RenterID() uuid.UUID { return b.renterID }

// Interval returns the reserved time window.
func (b *Booking) Interval() Interval { return b.interval }

// StartTime returns the reservation start instant.
func (b *Booking) StartTime() time.Time { return b.interval.Start() }

// EndTime returns the reservation end instant.
func (b *Booking) EndTime() time.Time { return b.interval.End() }

// TotalPrice returns the derived price for the reserved window.
func (b *Booking) TotalPrice() float64 { return b.totalPrice }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// TransitionTo moves the booking to the target status if the lifecycle table
// allows the edge.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// ConflictsWith reports whether the other booking contends for the same slot.
func (b *Booking) ConflictsWith(other *Booking) bool {
	if b.id == other.id || b.equipmentID != other.equipmentID {
		return false
	}
	return b.status.IsActive() && other.status.IsActive() && b.interval.Overlaps(other.interval)
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
