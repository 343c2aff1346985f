package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterFriendRoutes(r gin.IRouter) {
	friends := r.Group("/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.POST("", handlers.AddFriend)
		friends.GET("", handlers.ListFriends)
		friends.DELETE("/:id", handlers.DeleteFriend)
	}
}
