package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

func (c *CartController) GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var items []models.CartItem
	if result := c.DB.Where("user_id = ?", user.ID).Order("id").Find(&items); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", result.Error)
		return
	}

	total := 0.0
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items, "total": total})
}

// AddToCart adds an ebook to the caller's cart, capturing the current ebook
// price as the line's unit price. Adding an ebook already in the cart
// increments the existing row instead of creating a second one.
func (c *CartController) AddToCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var cartData models.AddToCartData
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var ebook models.Ebook
	if err := c.DB.First(&ebook, cartData.EbookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Ebook not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve ebook", err)
		}
		return
	}

	var existingItem models.CartItem
	err := c.DB.Where("user_id = ? AND ebook_id = ?", user.ID, cartData.EbookID).First(&existingItem).Error

	if err == nil {
		existingItem.Quantity += cartData.Quantity

		if err := c.DB.Save(&existingItem).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.", err)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch cart item", err)
		return
	}

	cartItem := models.CartItem{
		UserID:    user.ID,
		EbookID:   ebook.ID,
		EbookName: ebook.Name,
		UnitPrice: ebook.Price,
		Quantity:  cartData.Quantity,
	}

	if err := c.DB.Create(&cartItem).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create cart item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": ebook.Name + " added to cart",
		"id":      cartItem.ID,
	})
}

func (c *CartController) fetchOwnCartItem(ctx *gin.Context) (models.CartItem, bool) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return models.CartItem{}, false
	}

	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return models.CartItem{}, false
	}

	var item models.CartItem
	if err := c.DB.Where("id = ? AND user_id = ?", itemID, user.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve cart item", err)
		}
		return models.CartItem{}, false
	}

	return item, true
}

func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	item, ok := c.fetchOwnCartItem(ctx)
	if !ok {
		return
	}

	var updateData models.UpdateCartItemData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := c.DB.Model(&item).Update("quantity", updateData.Quantity).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update cart item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item updated", "item": item})
}

func (c *CartController) DeleteCartItem(ctx *gin.Context) {
	item, ok := c.fetchOwnCartItem(ctx)
	if !ok {
		return
	}

	if err := c.DB.Delete(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to remove cart item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := c.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to clear cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
