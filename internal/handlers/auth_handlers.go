package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

type loginRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// Login authenticates an employee by PIN and returns the session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	result, err := h.authService.Login(req.Pin)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, "Invalid PIN", ""))
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, "Failed to log in", ""))
		return
	}

	c.JSON(http.StatusOK, result)
}
