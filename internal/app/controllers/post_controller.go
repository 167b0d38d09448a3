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

// PostController handles reply operations inside discussions.
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// AppendPost adds a reply to an existing discussion.
func (c *PostController) AppendPost(ctx *gin.Context) {
	discussionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid discussion ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.AppendPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.Append(ctx, middleware.ActingUser(ctx), discussionID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewPostResponse(post),
		Timestamp: time.Now(),
	})
}

// DeletePost removes a reply. Deleting the opening post removes the whole
// discussion; the response message reflects which happened.
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	discussionDeleted, err := c.postService.Delete(ctx, middleware.ActingUser(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Post deleted successfully"
	if discussionDeleted {
		message = "Post was the opening post; discussion deleted"
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: message},
		Timestamp: time.Now(),
	})
}
