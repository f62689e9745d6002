package models

import "gorm.io/gorm"

// CartItem captures the ebook price at the time the item is added; checkout
// totals are computed from that snapshot, not the live ebook price.
type CartItem struct {
	gorm.Model
	UserID    uint    `json:"userId"`
	EbookID   uint    `json:"ebookId"`
	EbookName string  `json:"ebookName"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type AddToCartData struct {
	EbookID  uint `json:"ebookId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemData struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}
