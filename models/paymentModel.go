package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is 1:1 with an order; the single-payment rule is enforced in the
// handler, not by a database constraint.
type Payment struct {
	gorm.Model
	OrderID    uint       `json:"orderId"`
	Method     string     `json:"method"`
	Amount     float64    `json:"amount"`
	StatusID   uint       `json:"statusId"`
	PaidAt     *time.Time `json:"paidAt"`
	GatewayRef string     `json:"gatewayRef"`
}

type CreatePaymentData struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

type UpdatePaymentData struct {
	StatusID uint `json:"statusId" binding:"required"`
}
