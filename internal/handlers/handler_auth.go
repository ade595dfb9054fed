package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

// authHandler handles login and logout.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers authentication routes. loginGroup carries the
// rate limiter; logoutGroup carries the auth middleware.
func registerAuthRoutes(loginGroup *gin.RouterGroup, logoutGroup *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	loginGroup.POST("/login", h.login)
	logoutGroup.POST("/logout", h.logout)
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT carrying the user's role
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Log out
// @Description Revokes the presented token until its natural expiry
// @Tags auth
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		// AuthMiddleware already validated the header; this is belt and braces.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		respondWithError(c, err, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
