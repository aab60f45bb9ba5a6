package identity

import (
	"context"
	"testing"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	identityDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTResolver_RoundTrip(t *testing.T) {
	resolver := NewJWTResolver("test-secret", "fieldshare")
	want := identityDomain.Identity{UserID: uuid.New(), Role: identityDomain.RoleRenter}

	token, err := resolver.IssueToken(want, time.Hour)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJWTResolver_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTResolver("secret-a", "fieldshare")
	resolver := NewJWTResolver("secret-b", "fieldshare")

	token, err := issuer.IssueToken(identityDomain.Identity{UserID: uuid.New(), Role: identityDomain.RoleOwner}, time.Hour)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
}

func TestJWTResolver_RejectsExpiredToken(t *testing.T) {
	resolver := NewJWTResolver("test-secret", "fieldshare")

	token, err := resolver.IssueToken(identityDomain.Identity{UserID: uuid.New(), Role: identityDomain.RoleOwner}, -time.Minute)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
}

func TestJWTResolver_RejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTResolver("test-secret", "someone-else")
	resolver := NewJWTResolver("test-secret", "fieldshare")

	token, err := issuer.IssueToken(identityDomain.Identity{UserID: uuid.New(), Role: identityDomain.RoleRenter}, time.Hour)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token)
	require.Error(t, err)
}

func TestJWTResolver_RejectsUnknownRole(t *testing.T) {
	resolver := NewJWTResolver("test-secret", "fieldshare")

	token, err := resolver.IssueToken(identityDomain.Identity{UserID: uuid.New(), Role: "superuser"}, time.Hour)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
}

func TestJWTResolver_RejectsGarbage(t *testing.T) {
	resolver := NewJWTResolver("test-secret", "fieldshare")

	_, err := resolver.Resolve(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))
}
