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

// NoticeController handles dormitory notice operations
type NoticeController struct {
	noticeService services.NoticeService
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService services.NoticeService) *NoticeController {
	return &NoticeController{noticeService: noticeService}
}

// ListNotices handles retrieving notices
// @Summary List notices
// @Description Retrieves notices newest first, optionally filtered by target tag.
// @Tags notices
// @Produce json
// @Security CookieAuth
// @Param target query string false "Filter by target tag"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.Notice} "Notices"
// @Router /notices [get]
func (nc *NoticeController) ListNotices(c *gin.Context) {
	limit := helpers.ParseLimit(c)
	target := c.Query("target")

	notices, err := nc.noticeService.ListNotices(c.Request.Context(), target, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(notices))
}

// GetNotice handles retrieving a single notice
// @Summary Get notice
// @Tags notices
// @Produce json
// @Security CookieAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Notice"
// @Failure 404 {object} dto.APIResponse "Notice not found"
// @Router /notices/{id} [get]
func (nc *NoticeController) GetNotice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid notice ID"))
		return
	}

	notice, err := nc.noticeService.GetNoticeByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(notice))
}

// CreateNotice handles creating a notice (staff only)
// @Summary Create notice
// @Tags notices
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateNoticeRequest true "Notice payload"
// @Success 201 {object} dto.APIResponse{data=models.Notice} "Created notice"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Router /notices [post]
func (nc *NoticeController) CreateNotice(c *gin.Context) {
	var req dto.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	notice := &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		Target:   req.Target,
		AuthorID: currentUserID(c),
	}
	id, err := nc.noticeService.CreateNotice(c.Request.Context(), notice)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	notice.ID = id

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(notice))
}

// UpdateNotice handles updating a notice (staff only)
// @Summary Update notice
// @Tags notices
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Notice ID"
// @Param request body dto.UpdateNoticeRequest true "Notice payload"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Updated notice"
// @Failure 404 {object} dto.APIResponse "Notice not found"
// @Router /notices/{id} [put]
func (nc *NoticeController) UpdateNotice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid notice ID"))
		return
	}

	var req dto.UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	notice := &models.Notice{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Target:  req.Target,
	}
	if err := nc.noticeService.UpdateNotice(c.Request.Context(), notice); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(notice))
}

// DeleteNotice handles deleting a notice (staff only)
// @Summary Delete notice
// @Tags notices
// @Produce json
// @Security CookieAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.APIResponse "Notice not found"
// @Router /notices/{id} [delete]
func (nc *NoticeController) DeleteNotice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid notice ID"))
		return
	}

	if err := nc.noticeService.DeleteNotice(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
