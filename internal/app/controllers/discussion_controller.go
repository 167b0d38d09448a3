package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/app/services"
	"github.com/tolgakurt/forumcore/internal/middleware"
)

// DiscussionController handles discussion lifecycle operations.
type DiscussionController struct {
	discussionService *services.DiscussionService
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService *services.DiscussionService) *DiscussionController {
	return &DiscussionController{
		discussionService: discussionService,
	}
}

// CreateDiscussion starts a new discussion together with its first post.
// Authenticated callers are recorded as the author; anonymous callers must
// supply guest_name and guest_email.
func (c *DiscussionController) CreateDiscussion(ctx *gin.Context) {
	var req dto.CreateDiscussionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid discussion data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	discussion, err := c.discussionService.Create(ctx, middleware.ActingUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewDiscussionResponse(discussion, c.discussionService.Statuses()),
		Timestamp: time.Now(),
	})
}

// GetDiscussionByID retrieves a discussion with its posts.
func (c *DiscussionController) GetDiscussionByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid discussion ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	discussion, err := c.discussionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewDiscussionResponse(discussion, c.discussionService.Statuses()),
		Timestamp: time.Now(),
	})
}

// DeleteDiscussion removes a discussion and all of its posts. Only admins
// and the discussion's registered author may delete it.
func (c *DiscussionController) DeleteDiscussion(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid discussion ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.discussionService.Delete(ctx, middleware.ActingUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Discussion deleted successfully"},
		Timestamp: time.Now(),
	})
}

// ListMyDiscussions returns the discussions started by the authenticated user.
func (c *DiscussionController) ListMyDiscussions(ctx *gin.Context) {
	actor := middleware.ActingUser(ctx)
	if actor == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	discussions, err := c.discussionService.ListByAuthor(ctx, actor.HostType, actor.HostID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewDiscussionListResponse(discussions, c.discussionService.Statuses()),
		Timestamp: time.Now(),
	})
}
