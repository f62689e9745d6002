package models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model
	Number   string    `gorm:"uniqueIndex" json:"number"`
	OrderID  uint      `json:"orderId"`
	UserID   uint      `json:"userId"`
	Total    float64   `json:"total"`
	IssuedAt time.Time `json:"issuedAt"`
}
