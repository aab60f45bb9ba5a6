package equipment

import (
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	"github.com/google/uuid"
)

// Equipment is the read model for a listed piece of equipment. The catalog is
// owned by the directory service; the reservation core never writes it.
type Equipment struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	EquipmentType string
	Description   string
	HourlyPrice   float64
	DailyPrice    float64
	LocationLat   float64
	LocationLng   float64
	CreatedAt     time.Time
}

// Rates returns the equipment's rate card for pricing.
func (e *Equipment) Rates() booking.RateCard {
	return booking.RateCard{
		HourlyPrice: e.HourlyPrice,
		DailyPrice:  e.DailyPrice,
	}
}
