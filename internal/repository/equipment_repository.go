package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	equipmentDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/equipment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentModel is the GORM model for the equipment table. The catalog
// service owns writes; this service only reads it (and row-locks during
// reservation creation).
type EquipmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentType string    `gorm:"not null;size:100"`
	Description   string    `gorm:"size:1000"`
	HourlyPrice   float64   `gorm:"type:numeric(12,2);not null"`
	DailyPrice    float64   `gorm:"type:numeric(12,2);not null"`
	LocationLat   float64   `gorm:""`
	LocationLng   float64   `gorm:""`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (EquipmentModel) TableName() string {
	return "equipment"
}

// GormEquipmentDirectory is the store-backed implementation of the read-only
// equipment directory port.
type GormEquipmentDirectory struct {
	db *gorm.DB
}

// NewGormEquipmentDirectory creates a new GormEquipmentDirectory.
func NewGormEquipmentDirectory(db *gorm.DB) *GormEquipmentDirectory {
	return &GormEquipmentDirectory{db: db}
}

// GetEquipment retrieves a single equipment listing by ID.
func (d *GormEquipmentDirectory) GetEquipment(ctx context.Context, id uuid.UUID) (*equipmentDomain.Equipment, error) {
	var model EquipmentModel
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("equipment", id.String())
		}
		return nil, fmt.Errorf("failed to find equipment by ID: %w", err)
	}

	return &equipmentDomain.Equipment{
		ID:            model.ID,
		OwnerID:       model.OwnerID,
		EquipmentType: model.EquipmentType,
		Description:   model.Description,
		HourlyPrice:   model.HourlyPrice,
		DailyPrice:    model.DailyPrice,
		LocationLat:   model.LocationLat,
		LocationLng:   model.LocationLng,
		CreatedAt:     model.CreatedAt,
	}, nil
}
