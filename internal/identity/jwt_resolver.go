package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	identityDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by a caller credential.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver resolves opaque bearer credentials to identities using
// HMAC-signed JWTs issued by the identity service.
type JWTResolver struct {
	secret []byte
	issuer string
}

// NewJWTResolver creates a JWTResolver for the given signing secret.
func NewJWTResolver(secret, issuer string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret), issuer: issuer}
}

// Resolve validates the credential and returns the caller's identity.
func (r *JWTResolver) Resolve(_ context.Context, credential string) (identityDomain.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	}, jwt.WithIssuer(r.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return identityDomain.Identity{}, domain.NewUnauthenticatedError("invalid credential")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return identityDomain.Identity{}, domain.NewUnauthenticatedError("credential subject is not a user ID")
	}

	role := identityDomain.Role(claims.Role)
	if !role.IsValid() {
		return identityDomain.Identity{}, domain.NewUnauthenticatedError("credential carries an unknown role")
	}

	return identityDomain.Identity{UserID: userID, Role: role}, nil
}

// IssueToken mints a credential for the given identity. Used by tests and
// local tooling; production tokens come from the identity service.
func (r *JWTResolver) IssueToken(id identityDomain.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    r.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}
