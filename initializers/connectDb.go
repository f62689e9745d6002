package initializers

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectToDB opens the MySQL connection described by DB_URL and returns the
// handle. The handle is constructed once at startup, passed to routes, and
// closed via CloseDB at shutdown.
func ConnectToDB() *gorm.DB {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Println("Connected to database.")
	return db
}

func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Println("Error getting underlying DB handle:", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Println("Error closing database:", err)
	}
}
