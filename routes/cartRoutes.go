package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewCartController(db)

	cart := server.Group("/api/cart", middlewares.RequireAuth(db))
	{
		cart.GET("", ctrl.GetCart)
		cart.POST("", ctrl.AddToCart)
		cart.PUT("/:id", ctrl.UpdateCartItem)
		cart.DELETE("/:id", ctrl.DeleteCartItem)
		cart.DELETE("", ctrl.ClearCart)
	}
}
