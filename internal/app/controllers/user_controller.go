package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/helpers"
)

// UserController handles profile and roster operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetMyProfile handles retrieving the caller's own profile
// @Summary Own profile
// @Description Returns the caller's profile including merit point totals.
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Profile"
// @Failure 404 {object} dto.APIResponse "Account no longer exists"
// @Router /users/me [get]
func (uc *UserController) GetMyProfile(c *gin.Context) {
	user, err := uc.userService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// ListStudents handles retrieving the student roster (staff only)
// @Summary Student roster
// @Tags users
// @Produce json
// @Security CookieAuth
// @Param search query string false "Name or student number search"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Students"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Router /users [get]
func (uc *UserController) ListStudents(c *gin.Context) {
	students, err := uc.userService.ListStudents(c.Request.Context(), c.Query("search"), helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetUser handles retrieving a user by id (staff only)
// @Summary Get user
// @Tags users
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User} "User"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid user ID"))
		return
	}

	user, err := uc.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
