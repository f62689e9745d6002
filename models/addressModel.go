package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	UserID     uint   `json:"userId"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}
