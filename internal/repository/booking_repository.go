package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_equipment_status,priority:1"`
	RenterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time `gorm:"not null"`
	TotalPrice  float64   `gorm:"type:numeric(12,2);not null"`
	Status      string    `gorm:"not null;size:20;index:idx_bookings_equipment_status,priority:2"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindActiveOverlapping returns active bookings for the equipment whose
// windows conflict with the interval. The closed-interval test counts
// touching endpoints as a conflict.
func (r *GormBookingRepository) FindActiveOverlapping(ctx context.Context, equipmentID uuid.UUID, interval bookingDomain.Interval) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := overlapQuery(r.db.WithContext(ctx), equipmentID, interval).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	return toDomainBookings(models)
}

// CreateIfAvailable inserts the booking only if its window is free. The
// conflict check and the insert run in one transaction that first takes a row
// lock on the equipment, serializing concurrent attempts per equipment ID.
func (r *GormBookingRepository) CreateIfAvailable(ctx context.Context, b *bookingDomain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked EquipmentModel
		err := tx.Model(&EquipmentModel{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", b.EquipmentID()).
			Take(&locked).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("equipment", b.EquipmentID().String())
			}
			return fmt.Errorf("failed to lock equipment row: %w", err)
		}

		var conflicts int64
		if err := overlapQuery(tx, b.EquipmentID(), b.Interval()).Count(&conflicts).Error; err != nil {
			return fmt.Errorf("failed to check for conflicts: %w", err)
		}
		if conflicts > 0 {
			return domain.NewConflictError("equipment is not available for the selected window")
		}

		return tx.Create(toBookingModel(b)).Error
	})
}

// UpdateStatus persists a status change guarded by the previously read status
// and version. If another actor won the race, no rows match and the caller
// gets a conflict.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, b *bookingDomain.Booking, previous bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ? AND version = ?", b.ID(), string(previous), b.Version()-1).
		Updates(map[string]interface{}{
			"status":     string(b.Status()),
			"version":    b.Version(),
			"updated_at": b.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another actor")
	}
	return nil
}

// FindByRenterID retrieves the renter's bookings, most recent first.
func (r *GormBookingRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("renter_id = ?", renterID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count renter bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find renter bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindByOwnerID retrieves bookings placed on the owner's equipment, most
// recent first.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	ownerScope := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN equipment ON equipment.id = bookings.equipment_id").
			Where("equipment.owner_id = ?", ownerID)
	}

	var total int64
	if err := ownerScope(r.db.WithContext(ctx).Model(&BookingModel{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := ownerScope(r.db.WithContext(ctx).Model(&BookingModel{})).
		Order("bookings.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// overlapQuery scopes to active bookings on the equipment conflicting with
// the interval: existing.start <= new.end AND existing.end >= new.start.
func overlapQuery(db *gorm.DB, equipmentID uuid.UUID, interval bookingDomain.Interval) *gorm.DB {
	statuses := make([]string, 0, 2)
	for _, s := range bookingDomain.ActiveStatuses() {
		statuses = append(statuses, string(s))
	}
	return db.Model(&BookingModel{}).
		Where("equipment_id = ? AND status IN ?", equipmentID, statuses).
		Where("start_time <= ? AND end_time >= ?", interval.End(), interval.Start())
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:          b.ID(),
		EquipmentID: b.EquipmentID(),
		RenterID:    b.RenterID(),
		StartTime:   b.StartTime(),
		EndTime:     b.EndTime(),
		TotalPrice:  b.TotalPrice(),
		Status:      string(b.Status()),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	interval, err := bookingDomain.NewInterval(m.StartTime, m.EndTime)
	if err != nil {
		return nil, fmt.Errorf("stored booking %s has an invalid interval: %w", m.ID, err)
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.EquipmentID,
		m.RenterID,
		interval,
		m.TotalPrice,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}
