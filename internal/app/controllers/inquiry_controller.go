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

// InquiryController handles student inquiry operations
type InquiryController struct {
	inquiryService services.InquiryService
}

// NewInquiryController creates a new InquiryController
func NewInquiryController(inquiryService services.InquiryService) *InquiryController {
	return &InquiryController{inquiryService: inquiryService}
}

// ListInquiries handles retrieving inquiries
// @Summary List inquiries
// @Description Non-staff callers only see their own inquiries.
// @Tags inquiries
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.Inquiry} "Inquiries"
// @Router /inquiries [get]
func (ic *InquiryController) ListInquiries(c *gin.Context) {
	inquiries, err := ic.inquiryService.ListInquiries(c.Request.Context(), currentCaller(c), helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(inquiries))
}

// GetInquiry handles retrieving a single inquiry (owner or staff)
// @Summary Get inquiry
// @Tags inquiries
// @Produce json
// @Security CookieAuth
// @Param id path int true "Inquiry ID"
// @Success 200 {object} dto.APIResponse{data=models.Inquiry} "Inquiry"
// @Failure 403 {object} dto.APIResponse "Inquiry owned by someone else"
// @Failure 404 {object} dto.APIResponse "Inquiry not found"
// @Router /inquiries/{id} [get]
func (ic *InquiryController) GetInquiry(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid inquiry ID"))
		return
	}

	inquiry, err := ic.inquiryService.GetInquiryByID(c.Request.Context(), currentCaller(c), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(inquiry))
}

// CreateInquiry handles creating an inquiry
// @Summary Create inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateInquiryRequest true "Inquiry payload"
// @Success 201 {object} dto.APIResponse{data=models.Inquiry} "Created inquiry"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Router /inquiries [post]
func (ic *InquiryController) CreateInquiry(c *gin.Context) {
	var req dto.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	inquiry := &models.Inquiry{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: currentUserID(c),
	}
	id, err := ic.inquiryService.CreateInquiry(c.Request.Context(), inquiry)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	inquiry.ID = id

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(inquiry))
}

// UpdateInquiry handles updating an inquiry (owner only)
// @Summary Update inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Inquiry ID"
// @Param request body dto.UpdateInquiryRequest true "Inquiry payload"
// @Success 200 {object} dto.APIResponse{data=models.Inquiry} "Updated inquiry"
// @Failure 403 {object} dto.APIResponse "Not the inquiry owner"
// @Failure 404 {object} dto.APIResponse "Inquiry not found"
// @Router /inquiries/{id} [put]
func (ic *InquiryController) UpdateInquiry(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid inquiry ID"))
		return
	}

	var req dto.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	inquiry := &models.Inquiry{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := ic.inquiryService.UpdateInquiry(c.Request.Context(), currentCaller(c), inquiry); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(inquiry))
}

// ReplyInquiry handles attaching a staff reply
// @Summary Reply to inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Inquiry ID"
// @Param request body dto.ReplyInquiryRequest true "Reply payload"
// @Success 200 {object} dto.APIResponse "Reply saved"
// @Failure 403 {object} dto.APIResponse "Staff role required"
// @Failure 404 {object} dto.APIResponse "Inquiry not found"
// @Router /inquiries/{id}/reply [put]
func (ic *InquiryController) ReplyInquiry(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid inquiry ID"))
		return
	}

	var req dto.ReplyInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	if err := ic.inquiryService.ReplyInquiry(c.Request.Context(), id, req.Reply); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// DeleteInquiry handles deleting an inquiry (owner only)
// @Summary Delete inquiry
// @Tags inquiries
// @Produce json
// @Security CookieAuth
// @Param id path int true "Inquiry ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.APIResponse "Not the inquiry owner"
// @Failure 404 {object} dto.APIResponse "Inquiry not found"
// @Router /inquiries/{id} [delete]
func (ic *InquiryController) DeleteInquiry(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid inquiry ID"))
		return
	}

	if err := ic.inquiryService.DeleteInquiry(c.Request.Context(), currentCaller(c), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
