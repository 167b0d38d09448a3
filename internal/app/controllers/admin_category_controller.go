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

// AdminCategoryController serves the category management endpoints. The
// routes are mounted behind AdminRequired, and the service re-checks the
// actor's admin capability before mutating anything.
type AdminCategoryController struct {
	categoryService *services.CategoryService
}

// NewAdminCategoryController creates a new AdminCategoryController
func NewAdminCategoryController(categoryService *services.CategoryService) *AdminCategoryController {
	return &AdminCategoryController{
		categoryService: categoryService,
	}
}

// ListCategories returns every category, hidden ones included.
func (c *AdminCategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.categoryService.ListAll(ctx, middleware.ActingUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCategoryListResponse(categories),
		Timestamp: time.Now(),
	})
}

// CreateCategory creates a new category.
func (c *AdminCategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category, err := c.categoryService.Create(ctx, middleware.ActingUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewCategoryResponse(category),
		Timestamp: time.Now(),
	})
}

// UpdateCategory updates a category's name and visibility.
func (c *AdminCategoryController) UpdateCategory(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	category, err := c.categoryService.Update(ctx, middleware.ActingUser(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCategoryResponse(category),
		Timestamp: time.Now(),
	})
}

// DeleteCategory deletes an empty category. Categories that still contain
// discussions cannot be deleted.
func (c *AdminCategoryController) DeleteCategory(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.categoryService.Delete(ctx, middleware.ActingUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Category deleted successfully"},
		Timestamp: time.Now(),
	})
}
