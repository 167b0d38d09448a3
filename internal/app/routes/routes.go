package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolgakurt/forumcore/internal/app/controllers"
	"github.com/tolgakurt/forumcore/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	categoryController *controllers.CategoryController,
	discussionController *controllers.DiscussionController,
	postController *controllers.PostController,
	adminCategoryController *controllers.AdminCategoryController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// API version group. Every route resolves the acting user when a bearer
	// token is present; anonymous requests pass through untouched.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.ResolveActingUser())

	// --- Public category routes ---
	categories := v1.Group("/categories")
	{
		categories.GET("", categoryController.ListCategories)
		categories.GET("/:id", categoryController.GetCategoryByID)
		categories.GET("/:id/discussions", categoryController.ListLatestDiscussions)
	}

	// --- Discussion routes ---
	discussions := v1.Group("/discussions")
	{
		discussions.GET("/mine", discussionController.ListMyDiscussions)
		discussions.GET("/:id", discussionController.GetDiscussionByID)
		discussions.POST("", discussionController.CreateDiscussion)
		discussions.DELETE("/:id", discussionController.DeleteDiscussion)
		discussions.POST("/:id/posts", postController.AppendPost)
	}

	// --- Post routes ---
	posts := v1.Group("/posts")
	{
		posts.DELETE("/:id", postController.DeletePost)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.AdminRequired())
	{
		adminCategories := admin.Group("/categories")
		{
			adminCategories.GET("", adminCategoryController.ListCategories)
			adminCategories.POST("", adminCategoryController.CreateCategory)
			adminCategories.PUT("/:id", adminCategoryController.UpdateCategory)
			adminCategories.DELETE("/:id", adminCategoryController.DeleteCategory)
		}
	}
}
