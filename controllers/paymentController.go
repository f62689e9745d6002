package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound     = "order not found"
	msgPaymentExists     = "a payment already exists for this order"
	msgPaymentNotFound   = "payment not found"
	msgInvalidTransition = "payment status can only change while pending"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

func GetPesapalAccessToken() (string, error) {
	consumerKey := os.Getenv("PESAPAL_CONSUMER_KEY")
	consumerSecret := os.Getenv("PESAPAL_CONSUMER_SECRET")

	if consumerKey == "" || consumerSecret == "" {
		return "", fmt.Errorf("pesapal consumer credentials are not set")
	}

	requestBody := map[string]string{
		"consumer_key":    consumerKey,
		"consumer_secret": consumerSecret,
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestBody).
		Post("https://pay.pesapal.com/v3/api/Auth/RequestToken")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response: %v", response)
	}

	return token, nil
}

// submitGatewayOrder registers the payment with Pesapal and returns the
// redirect URL plus the gateway tracking id.
func (c *PaymentController) submitGatewayOrder(user models.User, order models.Order) (redirectURL, trackingID string, err error) {
	token, err := GetPesapalAccessToken()
	if err != nil {
		return "", "", err
	}

	notificationID := os.Getenv("PESAPAL_NOTIFICATION_ID")
	if notificationID == "" {
		return "", "", fmt.Errorf("missing payment configuration")
	}

	gatewayOrder := map[string]any{
		"id":              fmt.Sprintf("ORDER-%d", order.ID),
		"currency":        "KES",
		"amount":          order.Total,
		"description":     fmt.Sprintf("Payment for order #%d", order.ID),
		"callback_url":    os.Getenv("FRONTEND_URL") + "/payment/callback",
		"notification_id": notificationID,
		"billing_address": map[string]any{
			"email_address": user.Email,
			"phone_number":  user.Phone,
			"country_code":  "KE",
			"first_name":    user.Fullname,
		},
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(gatewayOrder).
		Post("https://pay.pesapal.com/v3/api/Transactions/SubmitOrderRequest")

	if err != nil {
		return "", "", err
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("gateway request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		return "", "", fmt.Errorf("invalid response from payment gateway: %w", err)
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		return "", "", fmt.Errorf("incomplete response from payment gateway")
	}

	return redirectURL, trackingID, nil
}

// CreatePayment records a pending payment against the caller's order. The
// amount always comes from the stored order total, never the request body.
// Card payments are additionally registered with the gateway.
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var paymentData models.CreatePaymentData
	if err := ctx.ShouldBindJSON(&paymentData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var order models.Order
	if err := c.DB.Where("id = ? AND user_id = ?", paymentData.OrderID, user.ID).First(&order).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	var existing models.Payment
	err := c.DB.Where("order_id = ?", order.ID).First(&existing).Error
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPaymentExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to check existing payment", err)
		return
	}

	payment := models.Payment{
		OrderID:  order.ID,
		Method:   strings.ToLower(paymentData.Method),
		Amount:   order.Total,
		StatusID: models.PaymentStatusPending,
	}

	if err := c.DB.Create(&payment).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create payment", err)
		return
	}

	response := gin.H{"payment": payment}

	if payment.Method == "card" {
		redirectURL, trackingID, err := c.submitGatewayOrder(user, order)
		if err != nil {
			// The pending payment stays; the client may retry the gateway step.
			log.Println("Payment gateway error:", err)
			sendJSONResponse(ctx, http.StatusCreated, gin.H{
				"payment": payment,
				"warning": "Payment recorded but gateway initiation failed. Try again later.",
			})
			return
		}

		if err := c.DB.Model(&payment).Update("gateway_ref", trackingID).Error; err != nil {
			log.Printf("Payment %d created, but tracking ID not saved: %s", payment.ID, trackingID)
		}
		response["redirectUrl"] = redirectURL
	}

	sendJSONResponse(ctx, http.StatusCreated, response)
}

// completePayment applies the completed transition: payment marked completed
// with its paid-at time, and the order marked paid, in one transaction.
func (c *PaymentController) completePayment(payment *models.Payment) error {
	return c.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(payment).Updates(map[string]any{
			"status_id": models.PaymentStatusCompleted,
			"paid_at":   &now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Order{}).
			Where("id = ?", payment.OrderID).
			Update("status_id", models.OrderStatusPaid).Error
	})
}

func (c *PaymentController) failPayment(payment *models.Payment) error {
	return c.DB.Model(payment).Update("status_id", models.PaymentStatusFailed).Error
}

// UpdatePayment transitions a pending payment to completed or failed.
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	paymentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var updateData models.UpdatePaymentData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidPaymentStatus(updateData.StatusID) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown payment status")
		return
	}

	var payment models.Payment
	query := c.DB.Where("payments.id = ?", paymentID)
	if user.RoleID != models.RoleAdmin {
		query = query.Joins("JOIN orders ON orders.id = payments.order_id").
			Where("orders.user_id = ?", user.ID)
	}
	if err := query.First(&payment).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgPaymentNotFound)
		return
	}

	if payment.StatusID != models.PaymentStatusPending {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidTransition)
		return
	}

	switch updateData.StatusID {
	case models.PaymentStatusCompleted:
		err = c.completePayment(&payment)
	case models.PaymentStatusFailed:
		err = c.failPayment(&payment)
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidTransition)
		return
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update payment", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment updated successfully.", "payment": payment})
}

// HandlePaymentIPN receives the gateway's payment notification, pulls the
// authoritative transaction status and applies the matching transition.
func (c *PaymentController) HandlePaymentIPN(ctx *gin.Context) {
	var trackingID string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			OrderTrackingId string `json:"OrderTrackingId"`
		}
		if err := ctx.BindJSON(&payload); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid JSON")
			return
		}
		trackingID = payload.OrderTrackingId
	} else {
		trackingID = ctx.Query("orderTrackingId")
	}

	if trackingID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing parameters")
		return
	}

	var payment models.Payment
	if err := c.DB.Where("gateway_ref = ?", trackingID).First(&payment).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgPaymentNotFound)
		return
	}

	token, err := GetPesapalAccessToken()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Authentication with payment gateway failed", err)
		return
	}

	statusURL := "https://pay.pesapal.com/v3/api/Transactions/GetTransactionStatus?orderTrackingId=" + trackingID

	resp, err := resty.New().R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		Get(statusURL)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check payment status", err)
		return
	}

	var statusResp map[string]any
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Invalid response from payment gateway", err)
		return
	}

	statusDesc := strings.ToUpper(fmt.Sprint(statusResp["payment_status_description"]))

	if payment.StatusID == models.PaymentStatusPending {
		switch statusDesc {
		case "COMPLETED":
			err = c.completePayment(&payment)
		case "FAILED", "INVALID", "REVERSED":
			err = c.failPayment(&payment)
		}
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update payment status", err)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderNotificationType": "IPNCHANGE",
		"orderTrackingId":       trackingID,
		"status":                200,
	})
}
