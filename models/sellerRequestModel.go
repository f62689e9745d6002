package models

import "gorm.io/gorm"

// SellerRequest is a customer's application for seller privileges, reviewed
// by an admin.
type SellerRequest struct {
	gorm.Model
	UserID       uint   `json:"userId"`
	BusinessName string `json:"businessName"`
	DocumentID   string `json:"documentId"`
	Description  string `json:"description"`
	StatusID     uint   `json:"statusId"`
}

type SellerRequestData struct {
	BusinessName string `json:"businessName" binding:"required"`
	DocumentID   string `json:"documentId" binding:"required"`
	Description  string `json:"description"`
}

type ReviewSellerRequestData struct {
	StatusID uint `json:"statusId" binding:"required"`
}
