package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AddressRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewAddressController(db)

	addresses := server.Group("/api/addresses", middlewares.RequireAuth(db))
	{
		addresses.GET("", ctrl.GetAddresses)
		addresses.POST("", ctrl.CreateAddress)
		addresses.PUT("/:id", ctrl.UpdateAddress)
		addresses.DELETE("/:id", ctrl.DeleteAddress)
	}
}
