package handler

import (
	"net/http"
	"strconv"

	"github.com/FieldShare-Rentals/service-rental/internal/application"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	identityDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/identity"
	"github.com/FieldShare-Rentals/service-rental/internal/middleware"
	"github.com/FieldShare-Rentals/service-rental/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for reservation and lifecycle
// operations.
type BookingHandler struct {
	reservations *application.ReservationService
	lifecycle    *application.LifecycleService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(reservations *application.ReservationService, lifecycle *application.LifecycleService) *BookingHandler {
	return &BookingHandler{reservations: reservations, lifecycle: lifecycle}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, resolver identityDomain.Resolver) {
	authMW := middleware.AuthMiddleware(resolver)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequireRole(identityDomain.RoleRenter), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.reservations.CreateBooking(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. Renters see their own bookings;
// owners see bookings placed on their equipment.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	switch id.Role {
	case identityDomain.RoleOwner:
		res, err := h.reservations.GetOwnerBookings(c.Request.Context(), id.UserID, page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, res.Items, res.Total, res.Page, res.Limit)

	default:
		res, err := h.reservations.GetRenterBookings(c.Request.Context(), id.UserID, page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, res.Items, res.Total, res.Page, res.Limit)
	}
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.reservations.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	target, err := bookingDomain.ParseBookingStatus(req.Status)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.lifecycle.UpdateStatus(c.Request.Context(), id, bookingID, target)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
