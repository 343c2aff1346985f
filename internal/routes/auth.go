package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/handlers"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)

	// Confirmation: the emailed link hits the GET form, the frontend posts
	// the token to the other.
	r.GET("/confirm", handlers.ConfirmFromQuery)
	r.POST("/confirm", handlers.ConfirmFromBody)
}
