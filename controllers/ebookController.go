package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EbookController struct {
	DB *gorm.DB
}

func NewEbookController(db *gorm.DB) *EbookController {
	return &EbookController{DB: db}
}

// ebookRow carries the joined category name alongside the ebook columns.
type ebookRow struct {
	models.Ebook
	CategoryName string `json:"categoryName"`
}

// canManageEbook: admins manage everything, sellers only their own ebooks.
func canManageEbook(user models.User, ebook models.Ebook) bool {
	if user.RoleID == models.RoleAdmin {
		return true
	}
	return user.RoleID == models.RoleSeller && ebook.CreatorID == user.ID
}

func (c *EbookController) CreateEbook(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var ebook models.Ebook
	if err := ctx.ShouldBindJSON(&ebook); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var category models.Category
	if err := c.DB.First(&category, ebook.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate category", err)
		}
		return
	}

	ebook.CreatorID = user.ID
	if err := c.DB.Create(&ebook).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create ebook", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"ebook": ebook})
}

// GetEbooks serves the paginated catalog search. Matching is a
// case-insensitive substring check OR-combined across name, description and
// category name, AND-combined with the category filter. Rows are ordered by
// id descending; relevance ranking is out of scope.
func (c *EbookController) GetEbooks(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	buildQuery := func() *gorm.DB {
		query := c.DB.Model(&models.Ebook{}).
			Joins("LEFT JOIN categories ON categories.id = ebooks.category_id")

		if search := ctx.Query("search"); search != "" {
			term := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(ebooks.name) LIKE ? OR LOWER(ebooks.description) LIKE ? OR LOWER(categories.name) LIKE ?",
				term, term, term,
			)
		}
		if categoryID := ctx.Query("categoryId"); categoryID != "" {
			query = query.Where("ebooks.category_id = ?", categoryID)
		}
		return query
	}

	var count int64
	if err := buildQuery().Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch ebooks", err)
		return
	}

	var ebooks []ebookRow
	result := buildQuery().
		Select("ebooks.*, categories.name AS category_name").
		Order("ebooks.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&ebooks)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch ebooks", result.Error)
		return
	}

	totalPages := int(math.Ceil(float64(count) / float64(limit)))
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"ebooks": ebooks,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"totalPages":  totalPages,
			"hasPrevPage": page > 1,
			"hasNextPage": totalPages > page,
		},
	})
}

func (c *EbookController) GetEbook(ctx *gin.Context) {
	ebookID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid ebook ID")
		return
	}

	var ebook ebookRow
	result := c.DB.Model(&models.Ebook{}).
		Joins("LEFT JOIN categories ON categories.id = ebooks.category_id").
		Select("ebooks.*, categories.name AS category_name").
		Where("ebooks.id = ?", ebookID).
		Scan(&ebook)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve ebook", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Ebook not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"ebook": ebook})
}

type ebookUpdateData struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"categoryId"`
}

// ebookUpdates maps caller fields onto an allow-list of updatable columns.
// Field names never reach the SQL text directly.
func ebookUpdates(data ebookUpdateData) map[string]any {
	updates := map[string]any{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.Price != nil && *data.Price >= 0 {
		updates["price"] = *data.Price
	}
	if data.Stock != nil {
		updates["stock"] = *data.Stock
	}
	if data.CategoryID != nil {
		updates["category_id"] = *data.CategoryID
	}
	return updates
}

func (c *EbookController) fetchManagedEbook(ctx *gin.Context) (models.Ebook, bool) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return models.Ebook{}, false
	}

	ebookID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid ebook ID")
		return models.Ebook{}, false
	}

	var ebook models.Ebook
	if err := c.DB.First(&ebook, ebookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Ebook not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve ebook", err)
		}
		return models.Ebook{}, false
	}

	// Existence is checked first so a foreign seller gets 403, not 404.
	if !canManageEbook(user, ebook) {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not have permission to manage this ebook")
		return models.Ebook{}, false
	}

	return ebook, true
}

func (c *EbookController) UpdateEbook(ctx *gin.Context) {
	ebook, ok := c.fetchManagedEbook(ctx)
	if !ok {
		return
	}

	var updateData ebookUpdateData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := ebookUpdates(updateData)
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	if err := c.DB.Model(&ebook).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update ebook", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Ebook updated successfully.", "ebook": ebook})
}

func (c *EbookController) DeleteEbook(ctx *gin.Context) {
	ebook, ok := c.fetchManagedEbook(ctx)
	if !ok {
		return
	}

	if err := c.DB.Delete(&ebook).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete ebook", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Ebook deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadEbookCover stores a cover image on S3 and saves its URL.
func (c *EbookController) UploadEbookCover(ctx *gin.Context) {
	ebook, ok := c.fetchManagedEbook(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("cover")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No cover file uploaded")
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "ebookstore"
	}

	// Unique key to prevent overwrites
	uniqueFilename := fmt.Sprintf("covers/%d-%s-%s", ebook.ID, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading cover %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	if err := c.DB.Model(&ebook).Update("cover_url", result.Location).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save cover URL", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cover uploaded successfully.", "url": result.Location})
}
