package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/auth"
)

// AuthController handles login, sign-up and session operations
type AuthController struct {
	authService services.AuthService
	userService services.UserService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, userService services.UserService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
		jwtService:  jwtService,
	}
}

// setSessionCookie writes the signed session token. SameSite None with the
// Secure flag so the cookie survives cross-site frontend deployments.
func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, token, ac.jwtService.TokenMaxAge(), "/", "", true, true)
}

// Login handles sign-in with an external provider token
// @Summary Sign in
// @Description Verifies an external provider token. Joined users receive a session cookie; unknown users get join=false and no cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Provider token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login outcome"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 401 {object} dto.APIResponse "Provider token rejected"
// @Failure 403 {object} dto.APIResponse "Email domain not allowed"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), req.Token)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if !result.Joined {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{Join: false}))
		return
	}

	ac.setSessionCookie(c, result.SessionToken)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		Join: true,
		Role: string(result.User.RoleType),
	}))
}

// Join handles first-time registration
// @Summary Sign up
// @Description Registers a verified provider account. Role and student number are derived from the email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.JoinRequest true "Provider token and optional display name"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Invalid request body or already registered"
// @Failure 401 {object} dto.APIResponse "Provider token rejected"
// @Failure 403 {object} dto.APIResponse "Email domain not allowed"
// @Router /auth/join [post]
func (ac *AuthController) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	result, err := ac.authService.Join(c.Request.Context(), req.Token, req.Name)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ac.setSessionCookie(c, result.SessionToken)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		Join: true,
		Role: string(result.User.RoleType),
	}))
}

// Logout clears the session cookie
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Session cleared"
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Me returns the authenticated user's profile
// @Summary Current session profile
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Profile"
// @Failure 401 {object} dto.APIResponse "Not authenticated"
// @Failure 404 {object} dto.APIResponse "Account no longer exists"
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.userService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
