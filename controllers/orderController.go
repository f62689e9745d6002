package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/Kariuki/ebookstore-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgEmptyCart           = "cart is empty"
	msgAddressNotFound     = "address not found"
	msgFailedToCreateOrder = "failed to create order"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func sendOrderConfirmationEmail(user models.User, order models.Order) error {
	emailData := utils.EmailData{
		Name:    user.Fullname,
		Message: "Thank you for your order! Your ebooks will be available for download once payment is confirmed.",
		Detail:  fmt.Sprintf("Order #%d — total %.2f", order.ID, order.Total),
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(user.Email, "Order Confirmation", emailData, templatePath)
}

// Checkout snapshots the caller's cart into an immutable order. The order
// row, its items and the cart clear happen in one transaction; on any
// failure the cart is left intact. Prices come from the cart-add-time
// snapshot, not the live ebook price.
func (c *OrderController) Checkout(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var checkoutData models.CheckoutData
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var address models.Address
	if err := c.DB.Where("id = ? AND user_id = ?", checkoutData.AddressID, user.ID).First(&address).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAddressNotFound)
		return
	}

	var cartItems []models.CartItem
	if result := c.DB.Where("user_id = ?", user.ID).Find(&cartItems); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", result.Error)
		return
	}
	if len(cartItems) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmptyCart)
		return
	}

	total := 0.0
	for _, item := range cartItems {
		total += item.UnitPrice * float64(item.Quantity)
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := models.Order{
		UserID:    user.ID,
		AddressID: address.ID,
		Total:     total,
		StatusID:  models.OrderStatusPending,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusBadRequest, msgFailedToCreateOrder, err)
		return
	}

	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:  order.ID,
			EbookID:  item.EbookID,
			Name:     item.EbookName,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusBadRequest, msgFailedToCreateOrder, err)
			return
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusBadRequest, msgFailedToCreateOrder, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save order", err)
		return
	}

	invoice := models.Invoice{
		Number:   uuid.NewString(),
		OrderID:  order.ID,
		UserID:   user.ID,
		Total:    order.Total,
		IssuedAt: time.Now(),
	}
	if err := c.DB.Create(&invoice).Error; err != nil {
		log.Printf("Order %d created, but invoice not saved: %v", order.ID, err)
	}

	if err := sendOrderConfirmationEmail(user, order); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"orderId": order.ID,
		"total":   order.Total,
		"invoice": invoice.Number,
	})
}

func (c *OrderController) GetMyOrders(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var orders []models.Order
	result := c.DB.Preload("OrderItems").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch orders.", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.Order
	query := c.DB.Preload("OrderItems").Where("id = ?", orderID)
	if user.RoleID != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order.", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetAllOrders lists every order, paginated, newest first.
func (c *OrderController) GetAllOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := c.DB.Preload("OrderItems")
	if statusID := ctx.Query("statusId"); statusID != "" {
		query = query.Where("status_id = ?", statusID)
	}

	var orders []models.Order
	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := c.DB.Model(&models.Order{})
	if statusID := ctx.Query("statusId"); statusID != "" {
		countQuery = countQuery.Where("status_id = ?", statusID)
	}
	countQuery.Count(&count)

	totalPages := math.Ceil(float64(count) / float64(limit))
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasPrevPage": page > 1,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		StatusID uint `json:"statusId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.ValidOrderStatus(orderStatusData.StatusID) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	result := c.DB.Model(&models.Order{}).Where("id = ?", orderID).Update("status_id", orderStatusData.StatusID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order status", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
