package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plumbdesk/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      Dashboard stats
// @Description  Booking counts, pending payments, monthly revenue and recent bookings.
// @Tags         admin,dashboard
// @Produce      json
// @Success      200 {object} dashboard.Stats
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
