package controllers

import (
	"net/http"
	"topup-store/middleware"
	"topup-store/models"
	"topup-store/services"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	Domain string
	Secure bool
	MaxAge int
}

// AuthController handles registration, login and logout.
type AuthController struct {
	authService services.AuthService
	cookies     CookieSettings
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService, cookies CookieSettings) *AuthController {
	return &AuthController{authService: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	identity, token, svcErr := ac.authService.Register(c.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.setSessionCookie(c, token)
	respondData(c, http.StatusCreated, identity)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	identity, token, svcErr := ac.authService.Login(c.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	ac.setSessionCookie(c, token)
	respondData(c, http.StatusOK, identity)
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", ac.cookies.Domain, ac.cookies.Secure, true)
	respondMessage(c, "Logged out successfully")
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookieName, token, ac.cookies.MaxAge, "/", ac.cookies.Domain, ac.cookies.Secure, true)
}
