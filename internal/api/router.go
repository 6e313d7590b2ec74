package api

import (
	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/handler"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	stationHandler *handler.StationHandler,
	lockerHandler *handler.LockerHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public)
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/sign-up", authHandler.SignUp)
		authGroup.POST("/sign-in", authHandler.SignIn)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Protected API routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())

	adminOnly := authMiddleware.RequireAuthority(models.AuthorityAdmin)

	// User accounts
	users := api.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.GET("", adminOnly, userHandler.List)
		users.DELETE("/:id", adminOnly, userHandler.Delete)
		users.PATCH("/restore/:id", adminOnly, userHandler.Restore)
	}

	// Stations
	stations := api.Group("/stations")
	{
		stations.GET("", stationHandler.List)
		stations.GET("/:id", stationHandler.Get)
		stations.POST("", adminOnly, stationHandler.Create)
		stations.DELETE("/:id", adminOnly, stationHandler.Delete)
		stations.PATCH("/restore/:id", adminOnly, stationHandler.Restore)
	}

	// Lockers
	lockers := api.Group("/lockers")
	{
		lockers.GET("", lockerHandler.List)
		lockers.GET("/my", lockerHandler.Mine)
		lockers.POST("", adminOnly, lockerHandler.Create)
		lockers.POST("/:id/reserve", lockerHandler.Reserve)
		lockers.POST("/:id/release", lockerHandler.Release)
	}

	// Support posts and comments
	posts := api.Group("/posts")
	{
		posts.POST("", postHandler.Create)
		posts.GET("", postHandler.List)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", commentHandler.Create)
		comments.GET("", commentHandler.List)
		comments.DELETE("/:id", commentHandler.Delete)
		comments.PATCH("/restore/:id", adminOnly, commentHandler.Restore)
	}

	return r
}
