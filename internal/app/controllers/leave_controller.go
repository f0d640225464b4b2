package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/models/dto"
	"github.com/minsu/dormisphere/internal/app/services"
	"github.com/minsu/dormisphere/internal/middleware"
	"github.com/minsu/dormisphere/internal/pkg/helpers"
)

// LeaveController handles overnight leave requests
type LeaveController struct {
	leaveService services.LeaveService
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService services.LeaveService) *LeaveController {
	return &LeaveController{leaveService: leaveService}
}

// CreateLeave handles submitting a leave request
// @Summary Request leave
// @Tags leaves
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateLeaveRequest true "Date and reason"
// @Success 201 {object} dto.APIResponse{data=models.LeaveRequest} "Pending request"
// @Failure 400 {object} dto.APIResponse "Invalid date or reason"
// @Router /leaves [post]
func (lc *LeaveController) CreateLeave(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	leave, err := lc.leaveService.CreateLeave(c.Request.Context(), currentUserID(c), req.Date, req.Reason)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(leave))
}

// ListLeaves handles listing leave requests
// @Summary List leave requests
// @Description Non-staff callers only see their own requests. Staff may filter by status.
// @Tags leaves
// @Produce json
// @Security CookieAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.LeaveRequest} "Leave requests"
// @Router /leaves [get]
func (lc *LeaveController) ListLeaves(c *gin.Context) {
	leaves, err := lc.leaveService.ListLeaves(c.Request.Context(), currentCaller(c), c.Query("status"), helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(leaves))
}

// WithdrawLeave handles cancelling a pending request (owner only)
// @Summary Withdraw leave request
// @Description A request can only be withdrawn while it is still pending.
// @Tags leaves
// @Produce json
// @Security CookieAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse "Withdrawn"
// @Failure 403 {object} dto.APIResponse "Not the owner, or already decided"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /leaves/{id} [delete]
func (lc *LeaveController) WithdrawLeave(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid leave request ID"))
		return
	}

	if err := lc.leaveService.WithdrawLeave(c.Request.Context(), currentCaller(c), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// DecideLeave handles approving or rejecting a request (staff only)
// @Summary Decide leave request
// @Description Decisions are one-shot; a request that is no longer pending cannot be decided again.
// @Tags leaves
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Leave request ID"
// @Param request body dto.DecideLeaveRequest true "approved or rejected"
// @Success 200 {object} dto.APIResponse "Decision recorded"
// @Failure 403 {object} dto.APIResponse "Already decided"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Router /leaves/{id}/decision [put]
func (lc *LeaveController) DecideLeave(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid leave request ID"))
		return
	}

	var req dto.DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	if err := lc.leaveService.DecideLeave(c.Request.Context(), currentUserID(c), id, models.LeaveStatus(req.Status)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
