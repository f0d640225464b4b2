package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/helpers"
)

// StayController handles weekend stay declarations
type StayController struct {
	stayService services.StayService
}

// NewStayController creates a new StayController
func NewStayController(stayService services.StayService) *StayController {
	return &StayController{stayService: stayService}
}

// SubmitStay handles declaring OUT or STAY for a date
// @Summary Declare stay status
// @Description Upserts the caller's OUT/STAY declaration for a date. Resubmitting overwrites the previous value.
// @Tags stays
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.SubmitStayRequest true "Date and status"
// @Success 200 {object} dto.APIResponse{data=models.StayStatus} "Saved declaration"
// @Failure 400 {object} dto.APIResponse "Invalid date or status"
// @Router /stays [put]
func (sc *StayController) SubmitStay(c *gin.Context) {
	var req dto.SubmitStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	stay, err := sc.stayService.SubmitStay(c.Request.Context(), currentUserID(c), req.Date, models.StayStatusValue(req.Status))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(stay))
}

// GetStay handles reading a declaration for a date
// @Summary Get stay status
// @Description Returns the caller's declaration for a date. Staff may pass userId to read any student's row.
// @Tags stays
// @Produce json
// @Security CookieAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param userId query int false "Target user (staff only)"
// @Success 200 {object} dto.APIResponse{data=models.StayStatus} "Declaration"
// @Failure 403 {object} dto.APIResponse "Cannot read another user's declaration"
// @Failure 404 {object} dto.APIResponse "No declaration for that date"
// @Router /stays [get]
func (sc *StayController) GetStay(c *gin.Context) {
	date := c.Query("date")

	var targetUserID *int64
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid userId"))
			return
		}
		targetUserID = &userID
	}

	stay, err := sc.stayService.GetStay(c.Request.Context(), currentCaller(c), targetUserID, date)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(stay))
}

// ListStays handles listing all declarations for a date (staff only)
// @Summary List stay statuses
// @Tags stays
// @Produce json
// @Security CookieAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.StayStatus} "Declarations"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Router /stays/all [get]
func (sc *StayController) ListStays(c *gin.Context) {
	stays, err := sc.stayService.ListStaysByDate(c.Request.Context(), c.Query("date"), helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(stays))
}
