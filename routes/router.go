package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KevinRabun/TruePulse-sub002/controllers"
	"github.com/KevinRabun/TruePulse-sub002/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Auth routes
	router.POST("/register", controllers.RegisterVoter)
	router.POST("/login", controllers.LoginVoter)

	// Public routes for viewing polls and results
	router.GET("/polls", controllers.GetActivePolls)
	router.GET("/polls/:poll_id/results", controllers.GetPollResults)

	// Protected routes for voting and poll management
	votingRoutes := router.Group("/")
	votingRoutes.Use(middleware.JWTAuthMiddleware())
	votingRoutes.POST("/vote", controllers.CastVote)
	votingRoutes.GET("/polls/:poll_id/vote-status", controllers.VoteStatus)
	votingRoutes.POST("/polls", controllers.CreatePoll)
	votingRoutes.PUT("/polls/:poll_id/deactivate", controllers.DeactivatePoll)
	votingRoutes.DELETE("/polls/:poll_id", controllers.DeletePoll)

	return router
}
