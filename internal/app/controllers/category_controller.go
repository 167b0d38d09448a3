package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/app/services"
	"github.com/tolgakurt/forumcore/internal/middleware"
)

// CategoryController serves the public, read-only category endpoints.
type CategoryController struct {
	categoryService   *services.CategoryService
	discussionService *services.DiscussionService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, discussionService *services.DiscussionService) *CategoryController {
	return &CategoryController{
		categoryService:   categoryService,
		discussionService: discussionService,
	}
}

// ListCategories returns visible categories, filtered by ?type=discussion|article.
// Without a type filter, discussion categories are returned.
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	var (
		categories []*models.Category
		err        error
	)

	switch ctx.DefaultQuery("type", "discussion") {
	case "article":
		categories, err = c.categoryService.ListArticleCategories(ctx)
	case "discussion":
		categories, err = c.categoryService.ListDiscussionCategories(ctx)
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category type")
		errorDetail = errorDetail.WithField("type").WithDetails("must be 'discussion' or 'article'")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCategoryListResponse(categories),
		Timestamp: time.Now(),
	})
}

// GetCategoryByID retrieves a single category by ID.
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category, err := c.categoryService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCategoryResponse(category),
		Timestamp: time.Now(),
	})
}

// ListLatestDiscussions returns the most recently started public discussions
// in a category. The ?limit= parameter is optional; when absent or
// non-positive the service substitutes its configured default.
func (c *CategoryController) ListLatestDiscussions(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	discussions, err := c.discussionService.LatestForCategory(ctx, id, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewDiscussionListResponse(discussions, c.discussionService.Statuses()),
		Timestamp: time.Now(),
	})
}
