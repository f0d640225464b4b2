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

// MeritController handles merit and demerit point operations
type MeritController struct {
	meritService services.MeritService
}

// NewMeritController creates a new MeritController
func NewMeritController(meritService services.MeritService) *MeritController {
	return &MeritController{meritService: meritService}
}

// parseTargetUserID resolves the userId query parameter, defaulting to the
// caller's own id when absent.
func parseTargetUserID(c *gin.Context) (int64, bool) {
	userIDStr := c.Query("userId")
	if userIDStr == "" {
		return currentUserID(c), true
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// AwardMerit handles recording merit or demerit points (staff only)
// @Summary Award points
// @Description Records a signed merit entry and updates the student's totals atomically. Positive scores add merit, negative add demerit.
// @Tags merits
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.AwardMeritRequest true "Target student and signed score"
// @Success 201 {object} dto.APIResponse{data=models.MeritLog} "Recorded entry"
// @Failure 400 {object} dto.APIResponse "Invalid payload or non-student target"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Failure 404 {object} dto.APIResponse "Target user not found"
// @Router /merits [post]
func (mc *MeritController) AwardMerit(c *gin.Context) {
	var req dto.AwardMeritRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	merit := &models.MeritLog{
		UserID:   req.UserID,
		Reason:   req.Reason,
		Score:    req.Score,
		Category: req.Category,
	}
	awarded, err := mc.meritService.Award(c.Request.Context(), currentUserID(c), merit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(awarded))
}

// ListMerits handles retrieving a student's point log
// @Summary List point entries
// @Description Lists merit log entries for a student. Non-staff callers may only read their own log.
// @Tags merits
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Target user, defaults to the caller"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.MeritLog} "Entries"
// @Failure 403 {object} dto.APIResponse "Cannot read another user's points"
// @Router /merits [get]
func (mc *MeritController) ListMerits(c *gin.Context) {
	targetUserID, ok := parseTargetUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid userId"))
		return
	}

	merits, err := mc.meritService.ListMerits(c.Request.Context(), currentCaller(c), targetUserID, helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(merits))
}

// GetMeritSummary handles retrieving a student's point totals
// @Summary Point totals
// @Tags merits
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Target user, defaults to the caller"
// @Success 200 {object} dto.APIResponse{data=dto.MeritSummaryResponse} "Totals"
// @Failure 403 {object} dto.APIResponse "Cannot read another user's points"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /merits/summary [get]
func (mc *MeritController) GetMeritSummary(c *gin.Context) {
	targetUserID, ok := parseTargetUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid userId"))
		return
	}

	user, err := mc.meritService.Summary(c.Request.Context(), currentCaller(c), targetUserID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MeritSummaryResponse{
		UserID:     user.ID,
		MeritPlus:  user.MeritPlus,
		MeritMinus: user.MeritMinus,
	}))
}
