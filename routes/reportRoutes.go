package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ReportRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewReportController(db)

	reports := server.Group("/api/reports", middlewares.RequireAuth(db), middlewares.RequireRole("admin"))
	{
		reports.GET("/sales-summary", ctrl.SalesSummary)
	}
}
