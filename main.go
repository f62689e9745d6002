package main

import (
	"time"

	"github.com/Kariuki/ebookstore-api/initializers"
	"github.com/Kariuki/ebookstore-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()
	db := initializers.ConnectToDB()
	defer initializers.CloseDB(db)
	initializers.SyncDatabase(db)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db)
	routes.EbookRoutes(server, db)
	routes.CartRoutes(server, db)
	routes.AddressRoutes(server, db)
	routes.OrderRoutes(server, db)
	routes.PaymentRoutes(server, db)
	routes.SellerRoutes(server, db)
	routes.ReportRoutes(server, db)

	server.Run()
}
