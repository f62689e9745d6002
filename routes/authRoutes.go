package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewAuthController(db)

	auth := server.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Register)
		auth.POST("/login", ctrl.Login)
		auth.POST("/forgot-password", ctrl.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", ctrl.ResetPassword)
		auth.GET("/profile", middlewares.RequireAuth(db), ctrl.GetProfile)
		auth.PUT("/profile", middlewares.RequireAuth(db), ctrl.UpdateProfile)
	}
}
