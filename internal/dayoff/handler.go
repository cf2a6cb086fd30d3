package dayoff

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"plumbdesk/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create day-off period
// @Description  Admin-only: create a closure window.
// @Tags         admin,day-off
// @Accept       json
// @Produce      json
// @Param        request body dayoff.CreatePeriodRequest true "Period payload"
// @Success      201 {object} dayoff.Period
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/day-off [post]
func (h *Handler) CreatePeriod(c *gin.Context) {
	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	period, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create day-off period"})
		return
	}

	c.JSON(http.StatusCreated, period)
}

// @Summary      List day-off periods
// @Tags         admin,day-off
// @Produce      json
// @Success      200 {array} dayoff.Period
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/day-off [get]
func (h *Handler) ListPeriods(c *gin.Context) {
	periods, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch day-off periods"})
		return
	}

	c.JSON(http.StatusOK, periods)
}

// @Summary      Update day-off period
// @Tags         admin,day-off
// @Accept       json
// @Produce      json
// @Param        id path int true "Period ID"
// @Param        request body dayoff.CreatePeriodRequest true "Period payload"
// @Success      200 {object} dayoff.Period
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/day-off/{id} [put]
func (h *Handler) UpdatePeriod(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid period ID"})
		return
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	period, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Day-off period not found"})
		return
	}

	c.JSON(http.StatusOK, period)
}

// @Summary      Delete day-off period
// @Tags         admin,day-off
// @Produce      json
// @Param        id path int true "Period ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/day-off/{id} [delete]
func (h *Handler) DeletePeriod(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid period ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPeriodNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Day-off period not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete day-off period"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Day-off period deleted"})
}

// @Summary      Current closure banner
// @Description  Public: returns the banner message if the business is closed today.
// @Tags         day-off
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/day-off/banner [get]
func (h *Handler) CurrentBanner(c *gin.Context) {
	today := time.Now().Format(DateLayout)

	period, show, err := h.service.CurrentBanner(c.Request.Context(), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check day-off status"})
		return
	}

	if !show {
		c.JSON(http.StatusOK, gin.H{"show_banner": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"show_banner": true,
		"title":       period.Title,
		"message":     *period.BannerMessage,
	})
}
