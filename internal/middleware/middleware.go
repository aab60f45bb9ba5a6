package middleware

import (
	"net/http"
	"strings"
	"time"

	identityDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/identity"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const identityKey = "identity"

// RequestIDHeader is the header carrying the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// AuthMiddleware extracts the bearer credential and resolves it to an
// identity, aborting with 401 when resolution fails.
func AuthMiddleware(resolver identityDomain.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		credential, found := strings.CutPrefix(header, "Bearer ")
		if !found || credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer credential"})
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the resolved identity has the role.
func RequireRole(role identityDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok || id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the resolved identity for the request, if any.
func GetIdentity(c *gin.Context) (identityDomain.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return identityDomain.Identity{}, false
	}
	id, ok := v.(identityDomain.Identity)
	return id, ok
}

// GetUserID returns the resolved caller's user ID.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}
	return id.UserID, true
}

// RequestIDMiddleware assigns each request a correlation ID, reusing an
// inbound one when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request with latency and status.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDHeader)),
		)
	}
}

// RecoveryMiddleware converts panics into 500 responses.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

// CORSMiddleware applies the service's CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", RequestIDHeader)
	return cors.New(cfg)
}

// SecurityHeadersMiddleware sets baseline hardening headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
