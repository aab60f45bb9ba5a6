package booking

import (
	"math"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
)

// PricingStrategy defines the interface for quoting a rental interval.
type PricingStrategy interface {
	// Quote returns the total price for renting at the given rates over the
	// interval, rounded to two decimal places.
	Quote(rates RateCard, interval Interval) (float64, error)
}

// RateCard holds the tiered rates attached to a piece of equipment.
type RateCard struct {
	HourlyPrice float64
	DailyPrice  float64
}

// TieredPricingStrategy implements the default mixed daily/hourly pricing.
type TieredPricingStrategy struct{}

// NewTieredPricingStrategy creates a new TieredPricingStrategy.
func NewTieredPricingStrategy() *TieredPricingStrategy {
	return &TieredPricingStrategy{}
}

// Quote computes the rental price.
//
// Pricing formula:
//   - full days (floor of duration / 24h) are charged at the daily rate
//   - the remaining hours are charged at the hourly rate
//   - rentals shorter than a day are charged entirely at the hourly rate
func (s *TieredPricingStrategy) Quote(rates RateCard, interval Interval) (float64, error) {
	if rates.HourlyPrice < 0 || rates.DailyPrice < 0 {
		return 0, domain.NewValidationError("rates cannot be negative")
	}

	duration := interval.Duration()
	fullDays := int64(duration / (24 * time.Hour))

	var total float64
	if fullDays >= 1 {
		remaining := duration - time.Duration(fullDays)*24*time.Hour
		total = float64(fullDays)*rates.DailyPrice + remaining.Hours()*rates.HourlyPrice
	} else {
		total = duration.Hours() * rates.HourlyPrice
	}

	return roundHalfUp(total), nil
}

// roundHalfUp rounds to two decimal places, half away from zero.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
