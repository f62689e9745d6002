package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func (c *CategoryController) GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := c.DB.Order("name").Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": category})
}

func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var category models.Category
	if err := c.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", err)
		}
		return
	}

	var updateData struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]any{}
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	if err := c.DB.Model(&category).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category updated successfully.", "category": category})
}

func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if result := c.DB.Delete(&models.Category{}, categoryID); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
