package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterMediaRoutes(r gin.IRouter) {
	media := r.Group("/media")
	{
		protected := media.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", handlers.UploadImage)
			protected.DELETE("/:id", handlers.DeleteImage)
		}

		// Unauthenticated reads by media id.
		media.GET("/:id/full", handlers.ViewFullImage)
		media.GET("/:id/resized", handlers.ViewResizedImage)
	}
}
