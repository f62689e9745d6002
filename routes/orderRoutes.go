package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewOrderController(db)
	invoiceCtrl := controllers.NewInvoiceController(db)

	orders := server.Group("/api/orders", middlewares.RequireAuth(db))
	{
		orders.POST("", ctrl.Checkout)
		orders.GET("", ctrl.GetMyOrders)
		orders.GET("/:id", ctrl.GetOrder)
		orders.GET("/admin/all", ctrl.GetAllOrders)
		orders.PATCH("/admin/:id/status", ctrl.UpdateOrderStatus)
	}

	invoices := server.Group("/api/invoices", middlewares.RequireAuth(db))
	{
		invoices.GET("", invoiceCtrl.GetInvoices)
		invoices.GET("/:id", invoiceCtrl.GetInvoice)
	}
}
