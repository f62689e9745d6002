package routes

import (
	"github.com/Kariuki/ebookstore-api/controllers"
	"github.com/Kariuki/ebookstore-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func EbookRoutes(server *gin.Engine, db *gorm.DB) {
	ctrl := controllers.NewEbookController(db)
	categoryCtrl := controllers.NewCategoryController(db)

	server.GET("/api/ebooks/paginated", ctrl.GetEbooks)
	server.GET("/api/ebooks/:id", ctrl.GetEbook)

	manage := server.Group("/api/ebooks", middlewares.RequireAuth(db), middlewares.RequireRole("admin", "seller"))
	{
		manage.POST("", ctrl.CreateEbook)
		manage.PUT("/:id", ctrl.UpdateEbook)
		manage.DELETE("/:id", ctrl.DeleteEbook)
		manage.POST("/:id/cover", ctrl.UploadEbookCover)
	}

	server.GET("/api/categories", categoryCtrl.GetCategories)

	categories := server.Group("/api/categories", middlewares.RequireAuth(db), middlewares.RequireRole("admin"))
	{
		categories.POST("", categoryCtrl.CreateCategory)
		categories.PUT("/:id", categoryCtrl.UpdateCategory)
		categories.DELETE("/:id", categoryCtrl.DeleteCategory)
	}
}
