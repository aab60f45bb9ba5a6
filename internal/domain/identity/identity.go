package identity

import (
	"context"

	"github.com/google/uuid"
)

// Role is the coarse role attached to a resolved identity.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
	RoleAdmin  Role = "admin"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleRenter, RoleAdmin:
		return true
	}
	return false
}

// Identity is a resolved caller: a stable user ID plus role. The credential
// itself stays opaque to the reservation core.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// Resolver maps an opaque caller credential to an Identity.
type Resolver interface {
	// Resolve validates the credential and returns the caller's identity.
	// An invalid or expired credential yields an unauthenticated error.
	Resolve(ctx context.Context, credential string) (Identity, error)
}
