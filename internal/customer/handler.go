package customer

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

// @Summary      Create customer
// @Tags         admin,customers
// @Accept       json
// @Produce      json
// @Param        request body customer.CreateCustomerRequest true "Customer payload"
// @Success      201 {object} customer.Customer
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/customers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	cust, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrVATRequiresCompany) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, cust)
}

// @Summary      List customers
// @Description  Paginated customer list with optional name/email search.
// @Tags         admin,customers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Param        search query string false "Name or email fragment"
// @Success      200 {object} api.PaginatedResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/customers [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := api.PageParams(c)
	search := c.Query("search")

	customers, total, err := h.service.List(c.Request.Context(), page, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch customers"})
		return
	}

	if customers == nil {
		customers = []Customer{}
	}

	c.JSON(http.StatusOK, api.PaginatedResponse{
		Items:      customers,
		Pagination: api.NewPagination(page, limit, total),
	})
}

// @Summary      Get customer
// @Tags         admin,customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} customer.Customer
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/customers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid customer ID"})
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch customer"})
		return
	}

	c.JSON(http.StatusOK, cust)
}

// @Summary      Update customer
// @Tags         admin,customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body customer.UpdateCustomerRequest true "Fields to update"
// @Success      200 {object} customer.Customer
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/customers/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid customer ID"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	cust, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, cust)
}

// @Summary      Delete customer
// @Tags         admin,customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/customers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid customer ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Customer deleted"})
}
