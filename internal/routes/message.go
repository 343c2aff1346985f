package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", handlers.CreateMessage)
		messages.DELETE("/:id", handlers.DeleteMessage)
	}
}
