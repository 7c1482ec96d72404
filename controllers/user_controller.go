package controllers

import (
	"net/http"
	"topup-store/middleware"
	"topup-store/models"
	"topup-store/services"

	"github.com/gin-gonic/gin"
)

// UserController handles profile endpoints for the logged-in user.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile handles GET /users/profile.
func (uc *UserController) GetProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	profile, svcErr := uc.userService.GetProfile(c.Request.Context(), identity.ID)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/profile.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	profile, svcErr := uc.userService.UpdateProfile(c.Request.Context(), identity.ID, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, profile)
}

// ChangePassword handles PUT /users/password.
func (uc *UserController) ChangePassword(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondNotAuthorized(c)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if svcErr := uc.userService.ChangePassword(c.Request.Context(), identity.ID, &req); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondMessage(c, "Password updated successfully")
}
