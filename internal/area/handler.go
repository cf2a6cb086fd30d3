package area

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plumbdesk/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      List active service areas
// @Tags         areas
// @Produce      json
// @Success      200 {array} area.Area
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/areas [get]
func (h *Handler) ListPublic(c *gin.Context) {
	areas, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch service areas"})
		return
	}

	c.JSON(http.StatusOK, areas)
}

// @Summary      Service area page content
// @Tags         areas
// @Produce      json
// @Param        slug path string true "Area slug"
// @Success      200 {object} area.Area
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/areas/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	a, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service area not found"})
		return
	}

	if !a.Active {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service area not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      List service areas (admin)
// @Tags         admin,areas
// @Produce      json
// @Success      200 {array} area.Area
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/areas [get]
func (h *Handler) ListAdmin(c *gin.Context) {
	areas, err := h.repo.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch service areas"})
		return
	}

	c.JSON(http.StatusOK, areas)
}

// @Summary      Create service area
// @Tags         admin,areas
// @Accept       json
// @Produce      json
// @Param        request body area.CreateAreaRequest true "Area payload"
// @Success      201 {object} area.Area
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /api/admin/areas [post]
func (h *Handler) CreateArea(c *gin.Context) {
	var req CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create service area"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// @Summary      Update service area
// @Tags         admin,areas
// @Accept       json
// @Produce      json
// @Param        id path int true "Area ID"
// @Param        request body area.UpdateAreaRequest true "Area payload"
// @Success      200 {object} area.Area
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/areas/{id} [put]
func (h *Handler) UpdateArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	var req UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service area not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Delete service area
// @Tags         admin,areas
// @Produce      json
// @Param        id path int true "Area ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/areas/{id} [delete]
func (h *Handler) DeleteArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrAreaNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service area not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete service area"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Service area deleted"})
}
