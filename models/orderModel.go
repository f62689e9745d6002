package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	UserID     uint        `json:"userId"`
	AddressID  uint        `json:"addressId"`
	Total      float64     `json:"total"`
	StatusID   uint        `json:"statusId"`
	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID  uint    `json:"orderId"`
	EbookID  uint    `json:"ebookId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CheckoutData struct {
	AddressID uint `json:"addressId" binding:"required"`
}
