package equipment

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the read-only port to the equipment catalog.
type Directory interface {
	// GetEquipment retrieves a single equipment listing by ID.
	GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error)
}
