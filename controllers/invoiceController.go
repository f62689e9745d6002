package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvoiceController struct {
	DB *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

func (c *InvoiceController) GetInvoices(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var invoices []models.Invoice
	query := c.DB.Order("issued_at desc")
	if user.RoleID != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}
	if result := query.Find(&invoices); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch invoices", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"invoices": invoices})
}

func (c *InvoiceController) GetInvoice(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	invoiceID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var invoice models.Invoice
	query := c.DB.Where("id = ?", invoiceID)
	if user.RoleID != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Invoice not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve invoice", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"invoice": invoice})
}
