package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/helpers"
	"github.com/minsu/dormisphere/internal/pkg/qr"
)

// CheckInController handles QR room check-in operations
type CheckInController struct {
	checkInService services.CheckInService
}

// NewCheckInController creates a new CheckInController
func NewCheckInController(checkInService services.CheckInService) *CheckInController {
	return &CheckInController{checkInService: checkInService}
}

// GenerateQR handles issuing today's check-in code (staff only)
// @Summary Issue check-in QR code
// @Description Generates the encrypted check-in token for today. The token stops validating at midnight.
// @Tags roomcheckins
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=dto.QRCodeResponse} "Check-in token"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Router /roomcheckins/qr [get]
func (cc *CheckInController) GenerateQR(c *gin.Context) {
	code, err := cc.checkInService.GenerateCode(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.QRCodeResponse{Code: code}))
}

// ScanCheckIn handles a student scanning the check-in code
// @Summary Scan check-in code
// @Description Validates the scanned token and records the check-in with its time-slot category.
// @Tags roomcheckins
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.ScanCheckInRequest true "Scanned token"
// @Success 201 {object} dto.APIResponse{data=models.RoomCheckIn} "Recorded check-in"
// @Failure 400 {object} dto.APIResponse "Malformed token"
// @Failure 403 {object} dto.APIResponse "Token from another day"
// @Router /roomcheckins [post]
func (cc *CheckInController) ScanCheckIn(c *gin.Context) {
	var req dto.ScanCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	checkIn, err := cc.checkInService.Scan(c.Request.Context(), currentUserID(c), req.Code)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(checkIn))
}

// ListCheckIns handles retrieving check-ins for a date
// @Summary List check-ins
// @Description Returns the caller's check-ins for a date. Staff may pass userId or omit it to see every student.
// @Tags roomcheckins
// @Produce json
// @Security CookieAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param userId query int false "Target user (staff only)"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.RoomCheckIn} "Check-ins"
// @Failure 403 {object} dto.APIResponse "Cannot read another user's check-ins"
// @Router /roomcheckins [get]
func (cc *CheckInController) ListCheckIns(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(qr.DateLayout)
	}

	var targetUserID *int64
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid userId"))
			return
		}
		targetUserID = &userID
	}

	checkIns, err := cc.checkInService.ListCheckIns(c.Request.Context(), currentCaller(c), targetUserID, date, helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(checkIns))
}
