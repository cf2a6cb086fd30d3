package gallery

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

// @Summary      Public gallery
// @Description  Published images, optionally filtered by category.
// @Tags         gallery
// @Produce      json
// @Param        category query string false "Category filter"
// @Success      200 {array} gallery.Image
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/gallery [get]
func (h *Handler) ListPublic(c *gin.Context) {
	images, err := h.repo.List(c.Request.Context(), c.Query("category"), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gallery"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// @Summary      List gallery images (admin)
// @Tags         admin,gallery
// @Produce      json
// @Param        category query string false "Category filter"
// @Success      200 {array} gallery.Image
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/gallery [get]
func (h *Handler) ListAdmin(c *gin.Context) {
	images, err := h.repo.List(c.Request.Context(), c.Query("category"), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gallery"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// @Summary      Add gallery image
// @Tags         admin,gallery
// @Accept       json
// @Produce      json
// @Param        request body gallery.CreateImageRequest true "Image payload"
// @Success      201 {object} gallery.Image
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/gallery [post]
func (h *Handler) CreateImage(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	img, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create gallery image"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// @Summary      Update gallery image
// @Tags         admin,gallery
// @Accept       json
// @Produce      json
// @Param        id path int true "Image ID"
// @Param        request body gallery.UpdateImageRequest true "Image payload"
// @Success      200 {object} gallery.Image
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gallery/{id} [put]
func (h *Handler) UpdateImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid image ID"})
		return
	}

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	img, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gallery image not found"})
		return
	}

	c.JSON(http.StatusOK, img)
}

// @Summary      Delete gallery image
// @Tags         admin,gallery
// @Produce      json
// @Param        id path int true "Image ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gallery/{id} [delete]
func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid image ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gallery image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete gallery image"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Gallery image deleted"})
}
