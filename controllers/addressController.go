package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressController struct {
	DB *gorm.DB
}

func NewAddressController(db *gorm.DB) *AddressController {
	return &AddressController{DB: db}
}

func (c *AddressController) GetAddresses(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var addresses []models.Address
	if result := c.DB.Where("user_id = ?", user.ID).Order("id").Find(&addresses); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch addresses", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

// setDefaultAddress flips the default flag to the given address inside one
// transaction, so the user never ends up with two defaults.
func (c *AddressController) setDefaultAddress(userID, addressID uint) error {
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND id != ?", userID, addressID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ?", addressID).
			Update("is_default", true).Error
	})
}

func (c *AddressController) CreateAddress(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return
	}

	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	address.UserID = user.ID

	if err := c.DB.Create(&address).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create address", err)
		return
	}

	if address.IsDefault {
		if err := c.setDefaultAddress(user.ID, address.ID); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to set default address", err)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": address})
}

func (c *AddressController) fetchOwnAddress(ctx *gin.Context) (models.Address, bool) {
	user, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "user not found in context")
		return models.Address{}, false
	}

	addressID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return models.Address{}, false
	}

	var address models.Address
	if err := c.DB.Where("id = ? AND user_id = ?", addressID, user.ID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve address", err)
		}
		return models.Address{}, false
	}

	return address, true
}

func (c *AddressController) UpdateAddress(ctx *gin.Context) {
	address, ok := c.fetchOwnAddress(ctx)
	if !ok {
		return
	}

	var updateData struct {
		Street     *string `json:"street"`
		City       *string `json:"city"`
		State      *string `json:"state"`
		PostalCode *string `json:"postalCode"`
		Country    *string `json:"country"`
		IsDefault  *bool   `json:"isDefault"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]any{}
	if updateData.Street != nil {
		updates["street"] = *updateData.Street
	}
	if updateData.City != nil {
		updates["city"] = *updateData.City
	}
	if updateData.State != nil {
		updates["state"] = *updateData.State
	}
	if updateData.PostalCode != nil {
		updates["postal_code"] = *updateData.PostalCode
	}
	if updateData.Country != nil {
		updates["country"] = *updateData.Country
	}

	if len(updates) > 0 {
		if err := c.DB.Model(&address).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update address", err)
			return
		}
	}

	if updateData.IsDefault != nil && *updateData.IsDefault {
		if err := c.setDefaultAddress(address.UserID, address.ID); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to set default address", err)
			return
		}
		address.IsDefault = true
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address updated successfully.", "address": address})
}

func (c *AddressController) DeleteAddress(ctx *gin.Context) {
	address, ok := c.fetchOwnAddress(ctx)
	if !ok {
		return
	}

	if err := c.DB.Delete(&address).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete address", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted successfully."})
}
