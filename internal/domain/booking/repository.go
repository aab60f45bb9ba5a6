package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Implementations must make CreateIfAvailable serializable with respect to
// concurrent creation attempts on the same equipment.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindActiveOverlapping returns active bookings for the equipment whose
	// windows conflict with the interval under the closed-interval test.
	FindActiveOverlapping(ctx context.Context, equipmentID uuid.UUID, interval Interval) ([]*Booking, error)

	// CreateIfAvailable atomically re-checks the interval against active
	// bookings for the same equipment and inserts the booking. It returns a
	// conflict error when the slot is already held.
	CreateIfAvailable(ctx context.Context, b *Booking) error

	// UpdateStatus persists a status change guarded by the previously read
	// status and version; 0 rows affected surfaces as a conflict error.
	UpdateStatus(ctx context.Context, b *Booking, previous BookingStatus) error

	// FindByRenterID retrieves the renter's bookings, most recent first.
	FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByOwnerID retrieves bookings placed on the owner's equipment,
	// most recent first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
