package application

import (
	"context"
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

// UpdateStatusRequest carries a requested lifecycle transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LifecycleService enforces authorized status transitions on bookings.
type LifecycleService struct {
	repo      bookingDomain.BookingRepository
	directory equipmentDomain.Directory
	producer  *kafka.Producer
	logger    *zap.Logger
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	repo bookingDomain.BookingRepository,
	directory equipmentDomain.Directory,
	producer *kafka.Producer,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		repo:      repo,
		directory: directory,
		producer:  producer,
		logger:    logger,
	}
}

// UpdateStatus moves a booking to the target status on behalf of the actor.
//
// The equipment owner may request any legal transition; the renter may only
// cancel their own booking. The persisted update is conditional on the status
// read here, so losing a concurrent race surfaces as a conflict instead of
// clobbering the other actor's change.
func (s *LifecycleService) UpdateStatus(ctx context.Context, actor identity.Identity, bookingID uuid.UUID, target bookingDomain.BookingStatus) (*BookingDTO, error) {
	if !target.IsValid() {
		return nil, domain.NewValidationError("unknown booking status: " + string(target))
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	equip, err := s.directory.GetEquipment(ctx, bk.EquipmentID())
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(actor, bk, equip, target); err != nil {
		return nil, err
	}

	previous := bk.Status()
	if err := bk.TransitionTo(target); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.UpdateStatus(ctx, bk, previous); err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, bk, actor.UserID, previous)

	result := toBookingDTO(bk)
	return &result, nil
}

// authorizeTransition applies the role gate: the equipment owner may change
// any status, the renter may only cancel.
func authorizeTransition(actor identity.Identity, bk *bookingDomain.Booking, equip *equipmentDomain.Equipment, target bookingDomain.BookingStatus) error {
	if actor.UserID == equip.OwnerID {
		return nil
	}
	if actor.UserID == bk.RenterID() && target == bookingDomain.StatusCancelled {
		return nil
	}
	return domain.NewForbiddenError("not authorized to update this booking")
}

func (s *LifecycleService) publishStatusChanged(ctx context.Context, bk *bookingDomain.Booking, actorID uuid.UUID, previous bookingDomain.BookingStatus) {
	evt := events.BookingStatusChangedEvent{
		BookingID:   bk.ID(),
		EquipmentID: bk.EquipmentID(),
		ActorID:     actorID,
		FromStatus:  string(previous),
		ToStatus:    string(bk.Status()),
		OccurredAt:  time.Now().UTC(),
	}
	publishEvent(ctx, s.producer, s.logger, events.BookingStatusChanged, evt)
}
