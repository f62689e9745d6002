package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesSummaryCountsOnlyPaidRevenue(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	customer := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)

	orders := []models.Order{
		{UserID: customer.ID, AddressID: 1, Total: 10, StatusID: models.OrderStatusPending},
		{UserID: customer.ID, AddressID: 1, Total: 20, StatusID: models.OrderStatusPaid},
		{UserID: customer.ID, AddressID: 1, Total: 30, StatusID: models.OrderStatusCompleted},
	}
	require.NoError(t, db.Create(&orders).Error)

	items := []models.OrderItem{
		{OrderID: orders[1].ID, EbookID: 1, Name: "Bestseller", Price: 10, Quantity: 2},
		{OrderID: orders[2].ID, EbookID: 2, Name: "Runner Up", Price: 30, Quantity: 1},
	}
	require.NoError(t, db.Create(&items).Error)

	recorder := doRequest(server, http.MethodGet, "/api/reports/sales-summary", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["orderCount"])
	assert.Equal(t, float64(50), summary["paidRevenue"], "pending orders contribute no revenue")

	topEbooks := summary["topEbooks"].([]any)
	require.NotEmpty(t, topEbooks)
	assert.Equal(t, "Bestseller", topEbooks[0].(map[string]any)["name"])
}

func TestSalesSummaryRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	customer := createTestUser(t, db, "buyer@example.com", models.RoleCustomer)

	recorder := doRequest(server, http.MethodGet, "/api/reports/sales-summary", tokenFor(t, customer), nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
