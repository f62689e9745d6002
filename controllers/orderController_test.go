package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutSnapshotsCartIntoOrder(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	token := tokenFor(t, user)
	category := createTestCategory(t, db, "Fiction")
	ebookA := createTestEbook(t, db, "Ebook A", 10, category.ID, 1)
	ebookB := createTestEbook(t, db, "Ebook B", 5, category.ID, 1)
	address := createTestAddress(t, db, user.ID)

	addCartItem(t, server, token, ebookA.ID, 2)
	addCartItem(t, server, token, ebookB.ID, 1)

	recorder := doRequest(server, http.MethodPost, "/api/orders", token, gin.H{"addressId": address.ID})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, 25.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.StatusID)
	assert.Equal(t, address.ID, order.AddressID)

	require.Len(t, order.OrderItems, 2)
	prices := map[uint]float64{}
	quantities := map[uint]int{}
	for _, item := range order.OrderItems {
		prices[item.EbookID] = item.Price
		quantities[item.EbookID] = item.Quantity
	}
	assert.Equal(t, 10.0, prices[ebookA.ID])
	assert.Equal(t, 5.0, prices[ebookB.ID])
	assert.Equal(t, 2, quantities[ebookA.ID])
	assert.Equal(t, 1, quantities[ebookB.ID])

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Zero(t, cartCount, "cart should be empty after checkout")

	var invoiceCount int64
	db.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&invoiceCount)
	assert.EqualValues(t, 1, invoiceCount)
}

func TestCheckoutTotalUsesCartTimePrice(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	token := tokenFor(t, user)
	category := createTestCategory(t, db, "Fiction")
	ebook := createTestEbook(t, db, "Ebook A", 10, category.ID, 1)
	address := createTestAddress(t, db, user.ID)

	addCartItem(t, server, token, ebook.ID, 1)

	// A price change after the item is in the cart must not affect checkout.
	require.NoError(t, db.Model(&ebook).Update("price", 99.0).Error)

	recorder := doRequest(server, http.MethodPost, "/api/orders", token, gin.H{"addressId": address.ID})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, 10.0, order.Total)
}

func TestCheckoutEmptyCartRejectedWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	token := tokenFor(t, user)
	address := createTestAddress(t, db, user.ID)

	recorder := doRequest(server, http.MethodPost, "/api/orders", token, gin.H{"addressId": address.ID})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestCheckoutMissingAddressRejectedBeforeWrites(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	token := tokenFor(t, user)
	category := createTestCategory(t, db, "Fiction")
	ebook := createTestEbook(t, db, "Ebook A", 10, category.ID, 1)

	addCartItem(t, server, token, ebook.ID, 1)

	recorder := doRequest(server, http.MethodPost, "/api/orders", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var orderCount, cartCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.CartItem{}).Count(&cartCount)
	assert.Zero(t, orderCount)
	assert.EqualValues(t, 1, cartCount, "cart must stay intact when checkout is rejected")
}

func TestCheckoutForeignAddressRejected(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	other := createTestUser(t, db, "other@example.com", models.RoleCustomer)
	token := tokenFor(t, user)
	category := createTestCategory(t, db, "Fiction")
	ebook := createTestEbook(t, db, "Ebook A", 10, category.ID, 1)
	foreignAddress := createTestAddress(t, db, other.ID)

	addCartItem(t, server, token, ebook.ID, 1)

	recorder := doRequest(server, http.MethodPost, "/api/orders", token, gin.H{"addressId": foreignAddress.ID})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	user := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)
	token := tokenFor(t, user)

	order := models.Order{UserID: user.ID, AddressID: 1, Total: 10, StatusID: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	recorder := doRequest(server, http.MethodPatch, "/api/orders/admin/1/status", token, gin.H{"statusId": 99})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(server, http.MethodPatch, "/api/orders/admin/1/status", token, gin.H{"statusId": models.OrderStatusCompleted})
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, order.StatusID)
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleCustomer)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleCustomer)

	order := models.Order{UserID: owner.ID, AddressID: 1, Total: 10, StatusID: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	recorder := doRequest(server, http.MethodGet, "/api/orders/1", tokenFor(t, stranger), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(server, http.MethodGet, "/api/orders/1", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
