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

// PostController handles board post operations
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts handles retrieving board posts
// @Summary List posts
// @Description Lists visible posts plus the caller's own hidden posts. Staff see everything.
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.Post} "Posts"
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	posts, err := pc.postService.ListPosts(c.Request.Context(), currentCaller(c), helpers.ParseLimit(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost handles retrieving a single post
// @Summary Get post
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=models.Post} "Post"
// @Failure 403 {object} dto.APIResponse "Hidden post owned by someone else"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid post ID"))
		return
	}

	post, err := pc.postService.GetPostByID(c.Request.Context(), currentCaller(c), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost handles creating a board post
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreatePostRequest true "Post payload"
// @Success 201 {object} dto.APIResponse{data=models.Post} "Created post"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Visible:  *req.Visible,
		AuthorID: currentUserID(c),
	}
	id, err := pc.postService.CreatePost(c.Request.Context(), post)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	post.ID = id

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost handles updating a post (owner only)
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Post payload"
// @Success 200 {object} dto.APIResponse{data=models.Post} "Updated post"
// @Failure 403 {object} dto.APIResponse "Not the post owner"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid post ID"))
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	post := &models.Post{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Visible: *req.Visible,
	}
	if err := pc.postService.UpdatePost(c.Request.Context(), currentCaller(c), post); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles deleting a post (owner or staff)
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.APIResponse "Not the post owner"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, "Invalid post ID"))
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), currentCaller(c), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
