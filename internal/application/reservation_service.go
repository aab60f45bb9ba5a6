package application

import (
	"context"
	"fmt"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	equipmentDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/equipment"
	"github.com/FieldShare-Rentals/service-rental/internal/domain/identity"
	"github.com/FieldShare-Rentals/service-rental/internal/events"
	"github.com/FieldShare-Rentals/service-rental/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to reserve an equipment window.
type CreateBookingRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID          uuid.UUID `json:"id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	RenterID    uuid.UUID `json:"renter_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ReservationService creates reservations: it validates the requested window
// against the catalog and existing bookings, prices it, and commits a new
// pending booking.
type ReservationService struct {
	repo      bookingDomain.BookingRepository
	directory equipmentDomain.Directory
	pricing   bookingDomain.PricingStrategy
	producer  *kafka.Producer
	logger    *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	repo bookingDomain.BookingRepository,
	directory equipmentDomain.Directory,
	pricing bookingDomain.PricingStrategy,
	producer *kafka.Producer,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		repo:      repo,
		directory: directory,
		pricing:   pricing,
		producer:  producer,
		logger:    logger,
	}
}

// CreateBooking reserves the requested window for the renter. The conflict
// check and insert are one atomic store operation, so concurrent callers for
// the same equipment serialize: one wins, the rest get a conflict. A retry of
// an already-committed request conflicts with its own earlier booking rather
// than double-booking.
func (s *ReservationService) CreateBooking(ctx context.Context, renter identity.Identity, req CreateBookingRequest) (*BookingDTO, error) {
	interval, err := bookingDomain.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	equip, err := s.directory.GetEquipment(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	price, err := s.pricing.Quote(equip.Rates(), interval)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(equip.ID, renter.UserID, interval, price)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateIfAvailable(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingCreated(ctx, bk, equip.OwnerID)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *ReservationService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetRenterBookings retrieves paginated bookings placed by the renter,
// most recent first.
func (s *ReservationService) GetRenterBookings(ctx context.Context, renterID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByRenterID(ctx, renterID, page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetOwnerBookings retrieves paginated bookings placed on the owner's
// equipment, most recent first.
func (s *ReservationService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByOwnerID(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *ReservationService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *ReservationService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func (s *ReservationService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	evt := events.BookingCreatedEvent{
		BookingID:   bk.ID(),
		EquipmentID: bk.EquipmentID(),
		RenterID:    bk.RenterID(),
		OwnerID:     ownerID,
		StartTime:   bk.StartTime(),
		EndTime:     bk.EndTime(),
		TotalPrice:  bk.TotalPrice(),
		OccurredAt:  time.Now().UTC(),
	}
	publishEvent(ctx, s.producer, s.logger, events.BookingCreated, evt)
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:          bk.ID(),
		EquipmentID: bk.EquipmentID(),
		RenterID:    bk.RenterID(),
		StartTime:   bk.StartTime(),
		EndTime:     bk.EndTime(),
		TotalPrice:  bk.TotalPrice(),
		Status:      string(bk.Status()),
		Version:     bk.Version(),
		CreatedAt:   bk.CreatedAt(),
		UpdatedAt:   bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

// publishEvent wraps the payload in a CloudEvent and publishes it. Publish
// failures are logged, never surfaced: the booking operation has already
// committed.
func publishEvent(ctx context.Context, producer *kafka.Producer, logger *zap.Logger, eventType string, data interface{}) {
	if producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
