package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		protected := users.Group("/me")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("", handlers.GetTokenData)
			protected.GET("/admin", handlers.GetAdminFlag)
			protected.GET("/groups", handlers.GetMyGroups)
			protected.POST("/picture", handlers.SetProfilePicture)
			protected.DELETE("", handlers.DeleteAccount)
		}

		// Public profile picture read by username.
		users.GET("/picture/:username", handlers.GetProfilePicture)

		// Public profile projection, still behind authentication.
		users.GET("/:id", middleware.AuthMiddleware(), handlers.GetPublicProfile)
	}
}
