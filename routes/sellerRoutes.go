package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SellerRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewSellerRequestController(db)

	requests := server.Group("/api/seller-requests", middlewares.RequireAuth(db))
	{
		requests.POST("", ctrl.CreateSellerRequest)
		requests.GET("", middlewares.RequireRole("admin"), ctrl.GetSellerRequests)
		requests.PATCH("/:id", middlewares.RequireRole("admin"), ctrl.ReviewSellerRequest)
	}
}
