package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plumbdesk/internal/api"
	"plumbdesk/internal/auth"
	"plumbdesk/internal/config"
	"plumbdesk/internal/logger"
)

type Handler struct {
	repo Repository
	cfg  *config.Config
}

func NewHandler(repo Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// @Summary      Admin login
// @Description  Authenticates the admin and sets the session cookie. The
// @Description  token is also returned for non-browser clients.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body admin.LoginRequest true "Credentials"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := auth.GenerateSessionToken(a.ID, a.Email, h.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create session"})
		return
	}

	auth.SetSessionCookie(c, h.cfg.SessionCookieName, token, h.cfg.CookieSecure)
	logger.Infof("Admin %s logged in", a.Email)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": a,
	})
}

// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200 {object} api.MessageResponse
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cfg.SessionCookieName, h.cfg.CookieSecure)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
}

// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Success      200 {object} admin.Admin
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	a, err := h.repo.GetByID(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Change admin password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body admin.ChangePasswordRequest true "Passwords"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/auth/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.repo.GetByID(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	if !auth.CheckPassword(a.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to hash password"})
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), adminID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated"})
}
