package payment

import (
	"errors"
	"io"
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

// @Summary      Record payment
// @Description  Admin-only: record a payment taken outside the provider.
// @Tags         admin,payments
// @Accept       json
// @Produce      json
// @Param        request body payment.RecordPaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Create payment link
// @Description  Admin-only: create a hosted checkout session and email the link.
// @Tags         admin,payments
// @Accept       json
// @Produce      json
// @Param        request body payment.CreateLinkRequest true "Link payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      502 {object} api.ErrorResponse
// @Router       /api/admin/payments/link [post]
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.CreateLink(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrProviderRejected):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Payment provider rejected the request"})
		case errors.Is(err, ErrProviderUnavailable):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create payment link"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Payment provider webhook
// @Description  Receives signed provider callbacks and updates payment state.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/payments/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Failed to read request body"})
		return
	}

	_, err = h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSignature),
			errors.Is(err, ErrMalformedSignature),
			errors.Is(err, ErrInvalidSignature),
			errors.Is(err, ErrStaleSignature):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrSessionUnknown):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Failed to process webhook"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// @Summary      List payments
// @Tags         admin,payments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        booking query int false "Filter by booking ID"
// @Param        customer query int false "Filter by customer ID"
// @Param        status query string false "Filter by status"
// @Success      200 {object} api.PaginatedResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	page, limit := api.PageParams(c)
	bookingID, _ := strconv.Atoi(c.Query("booking"))
	customerID, _ := strconv.Atoi(c.Query("customer"))
	filter := ListFilter{
		BookingID:  bookingID,
		CustomerID: customerID,
		Status:     c.Query("status"),
	}

	payments, total, err := h.service.List(c.Request.Context(), page, limit, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, api.PaginatedResponse{
		Items:      payments,
		Pagination: api.NewPagination(page, limit, total),
	})
}

// @Summary      Get payment
// @Tags         admin,payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// @Summary      Delete payment
// @Tags         admin,payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/payments/{id} [delete]
func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete payment"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Payment deleted"})
}
