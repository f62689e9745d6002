package controllers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/Kariuki/ebookstore-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgPendingRequestExists = "you already have a pending seller request"
	msgRequestNotFound      = "seller request not found"
	msgAlreadyReviewed      = "seller request has already been reviewed"
)

type SellerRequestController struct {
	DB *gorm.DB
}

func NewSellerRequestController(db *gorm.DB) *SellerRequestController {
	return &SellerRequestController{DB: db}
}

func sendSellerApprovalEmail(user models.User, request models.SellerRequest) error {
	emailData := utils.EmailData{
		Name:    user.Fullname,
		Message: "Your seller application has been approved. You can now publish ebooks on the marketplace.",
		Detail:  request.BusinessName,
	}

	templatePath := filepath.Join("templates", "seller_approved.html")
	return utils.SendEmail(user.Email, "Seller Application Approved", emailData, templatePath)
}

// CreateSellerRequest files a seller application for the caller. One pending
// application per user.
func (c *SellerRequestController) CreateSellerRequest(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var requestData models.SellerRequestData
	if err := ctx.ShouldBindJSON(&requestData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var existing models.SellerRequest
	err := c.DB.Where("user_id = ? AND status_id = ?", user.ID, models.SellerRequestPending).First(&existing).Error
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPendingRequestExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to check existing requests", err)
		return
	}

	request := models.SellerRequest{
		UserID:       user.ID,
		BusinessName: requestData.BusinessName,
		DocumentID:   requestData.DocumentID,
		Description:  requestData.Description,
		StatusID:     models.SellerRequestPending,
	}

	if err := c.DB.Create(&request).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create seller request", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"request": request})
}

// GetSellerRequests lists applications for admin review, optionally
// filtered by status.
func (c *SellerRequestController) GetSellerRequests(ctx *gin.Context) {
	query := c.DB.Order("created_at desc")
	if statusID := ctx.Query("statusId"); statusID != "" {
		query = query.Where("status_id = ?", statusID)
	}

	var requests []models.SellerRequest
	if result := query.Find(&requests); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch seller requests", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"requests": requests})
}

// ReviewSellerRequest approves or rejects a pending application. Approval
// promotes the applicant to seller in the same transaction as the status
// change.
func (c *SellerRequestController) ReviewSellerRequest(ctx *gin.Context) {
	requestID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var reviewData models.ReviewSellerRequestData
	if err := ctx.ShouldBindJSON(&reviewData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reviewData.StatusID != models.SellerRequestApproved && reviewData.StatusID != models.SellerRequestRejected {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status must be approved or rejected")
		return
	}

	var request models.SellerRequest
	if err := c.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgRequestNotFound)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve seller request", err)
		}
		return
	}

	if request.StatusID != models.SellerRequestPending {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAlreadyReviewed)
		return
	}

	if reviewData.StatusID == models.SellerRequestApproved {
		err = c.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Update("status_id", models.SellerRequestApproved).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).
				Where("id = ?", request.UserID).
				Update("role_id", models.RoleSeller).Error
		})
	} else {
		err = c.DB.Model(&request).Update("status_id", models.SellerRequestRejected).Error
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to review seller request", err)
		return
	}

	if reviewData.StatusID == models.SellerRequestApproved {
		var applicant models.User
		if err := c.DB.First(&applicant, request.UserID).Error; err == nil {
			if err := sendSellerApprovalEmail(applicant, request); err != nil {
				log.Println("Error sending seller approval email:", err)
			}
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Seller request reviewed.", "request": request})
}
