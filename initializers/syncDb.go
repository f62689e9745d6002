package initializers

import (
	"log"

	"github.com/Kariuki/ebookstore-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SyncDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Ebook{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Invoice{},
		&models.SellerRequest{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	SeedRoles(db)
	log.Println("Database synced successfully.")
}

// SeedRoles inserts the fixed role set, skipping rows that already exist.
func SeedRoles(db *gorm.DB) {
	roles := []models.Role{
		{ID: models.RoleAdmin, Name: "admin"},
		{ID: models.RoleSeller, Name: "seller"},
		{ID: models.RoleCustomer, Name: "customer"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		log.Println("Error seeding roles:", err)
	}
}
