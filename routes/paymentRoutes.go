package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func PaymentRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewPaymentController(db)

	payments := server.Group("/api/payments", middlewares.RequireAuth(db))
	{
		payments.POST("", ctrl.CreatePayment)
		payments.PUT("/:id", ctrl.UpdatePayment)
	}

	// Gateway notifications arrive unauthenticated.
	server.POST("/api/payments/ipn", ctrl.HandlePaymentIPN)
	server.GET("/api/payments/ipn", ctrl.HandlePaymentIPN)
}
