package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plumbdesk/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create booking
// @Description  Public booking form endpoint. Rejects occupied slots and closure dates.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ConflictResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.BindingErrors(err); details != nil {
			c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
				Error:   "validation failed",
				Details: details,
			})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req, "website")
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Create booking (admin)
// @Tags         admin,bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ConflictResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/bookings [post]
func (h *Handler) CreateBookingAdmin(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req, "admin")
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) writeCreateError(c *gin.Context, err error) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, api.ConflictResponse{
			Error:    "Slot unavailable",
			Conflict: true,
			Message:  conflict.Message,
		})
		return
	}

	var dayOff *DayOffError
	if errors.As(err, &dayOff) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: dayOff.Error()})
		return
	}

	if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidSlot) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
}

// @Summary      Slot availability
// @Description  Free slots for a date. Empty when the business is closed unless emergency=true.
// @Tags         bookings
// @Produce      json
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Param        emergency query bool false "Emergency override"
// @Success      200 {object} booking.Availability
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/bookings/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	emergency := c.Query("emergency") == "true"

	availability, err := h.service.Availability(c.Request.Context(), date, emergency)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, availability)
}

// @Summary      List bookings
// @Tags         admin,bookings
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        date query string false "Filter by date (YYYY-MM-DD)"
// @Param        status query string false "Filter by status"
// @Param        customer query int false "Filter by customer ID"
// @Success      200 {object} api.PaginatedResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	page, limit := api.PageParams(c)
	customerID, _ := strconv.Atoi(c.Query("customer"))
	filter := ListFilter{
		Date:     c.Query("date"),
		Status:   c.Query("status"),
		Customer: customerID,
	}

	bookings, total, err := h.service.List(c.Request.Context(), page, limit, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, api.PaginatedResponse{
		Items:      bookings,
		Pagination: api.NewPagination(page, limit, total),
	})
}

// @Summary      Get booking
// @Tags         admin,bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Update booking status
// @Tags         admin,bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body booking.UpdateStatusRequest true "New status"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/bookings/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Update booking payment status
// @Tags         admin,bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        request body booking.UpdatePaymentStatusRequest true "New payment status"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/bookings/{id}/payment-status [patch]
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Delete booking
// @Tags         admin,bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/bookings/{id} [delete]
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete booking"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking deleted"})
}
