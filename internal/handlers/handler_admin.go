package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

// adminHandler serves user administration.
type adminHandler struct {
	userService    portssvc.UserSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newAdminHandler(us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) *adminHandler {
	return &adminHandler{
		userService:    us,
		accountService: as,
	}
}

// registerAdminRoutes registers the admin route group.
func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) {
	h := newAdminHandler(us, as)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.PATCH("/:id/status", h.toggleUserStatus)
		users.GET("/:id/accounts", h.listUserAccounts)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a user. Clients and agents also get an account provisioned.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *adminHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags admin
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getUser godoc
// @Summary Get a user
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *adminHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *adminHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updaterUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes the user. Their data is retained for auditing.
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	deleterUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), deleterUserID); err != nil {
		respondWithError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleUserStatus godoc
// @Summary Toggle a user's active flag
// @Description Deactivated users can no longer log in.
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /admin/users/{id}/status [patch]
func (h *adminHandler) toggleUserStatus(c *gin.Context) {
	updaterUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleUserStatus(c.Request.Context(), c.Param("id"), updaterUserID)
	if err != nil {
		respondWithError(c, err, "Failed to toggle user status")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUserAccounts godoc
// @Summary List a user's accounts
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /admin/users/{id}/accounts [get]
func (h *adminHandler) listUserAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccountsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}
