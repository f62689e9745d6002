package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type Ebook struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Price       float64        `json:"price" binding:"gte=0"`
	Stock       int            `json:"stock"`
	CategoryID  uint           `json:"categoryId" binding:"required"`
	CreatorID   uint           `json:"creatorId"`
	CoverURL    string         `json:"coverUrl"`
	Formats     datatypes.JSON `json:"formats"`
}
