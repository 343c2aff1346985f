package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterConversationRoutes(r gin.IRouter) {
	conversations := r.Group("/conversations")
	conversations.Use(middleware.AuthMiddleware())
	{
		conversations.POST("", handlers.CreateConversation)
		conversations.GET("/public", handlers.ListPublicGroups)

		conversations.GET("/:id", handlers.GetConversationData)
		conversations.PATCH("/:id", handlers.UpdateConversation)
		conversations.DELETE("/:id", handlers.DeleteConversation)

		conversations.POST("/:id/join", handlers.JoinConversation)
		conversations.POST("/:id/leave", handlers.LeaveConversation)
		conversations.GET("/:id/messages", handlers.GetConversationMessages)
	}
}
