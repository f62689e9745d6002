package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ebookIDs(t *testing.T, body map[string]any) []float64 {
	t.Helper()

	if body["ebooks"] == nil {
		return nil
	}
	rows, ok := body["ebooks"].([]any)
	require.True(t, ok)
	ids := make([]float64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.(map[string]any)["ID"].(float64))
	}
	return ids
}

func TestPaginationTailAndPastEndPage(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	category := createTestCategory(t, db, "Fiction")
	for i := 1; i <= 7; i++ {
		createTestEbook(t, db, fmt.Sprintf("Book %d", i), 10, category.ID, 1)
	}

	// 7 items at 3 per page: page 3 holds the single remainder row.
	recorder := doRequest(server, http.MethodGet, "/api/ebooks/paginated?page=3&limit=3", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Len(t, ebookIDs(t, body), 1)

	metadata := body["metadata"].(map[string]any)
	assert.Equal(t, float64(7), metadata["total"])
	assert.Equal(t, false, metadata["hasNextPage"])

	// One page past the end: zero rows, still hasNextPage=false.
	recorder = doRequest(server, http.MethodGet, "/api/ebooks/paginated?page=4&limit=3", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body = decodeBody(t, recorder)
	assert.Empty(t, ebookIDs(t, body))
	assert.Equal(t, false, body["metadata"].(map[string]any)["hasNextPage"])
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	category := createTestCategory(t, db, "Fiction")
	createTestEbook(t, db, "My Ebook Primer", 10, category.ID, 1)
	createTestEbook(t, db, "Unrelated Title", 10, category.ID, 1)

	upper := doRequest(server, http.MethodGet, "/api/ebooks/paginated?search=EBOOK", "", nil)
	lower := doRequest(server, http.MethodGet, "/api/ebooks/paginated?search=ebook", "", nil)
	require.Equal(t, http.StatusOK, upper.Code)
	require.Equal(t, http.StatusOK, lower.Code)

	upperIDs := ebookIDs(t, decodeBody(t, upper))
	lowerIDs := ebookIDs(t, decodeBody(t, lower))
	require.Len(t, upperIDs, 1)
	assert.Equal(t, upperIDs, lowerIDs)
}

func TestSearchMatchesCategoryName(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	fiction := createTestCategory(t, db, "Fiction")
	cooking := createTestCategory(t, db, "Cooking")
	createTestEbook(t, db, "Plain Title", 10, fiction.ID, 1)
	createTestEbook(t, db, "Another Plain Title", 10, cooking.ID, 1)

	recorder := doRequest(server, http.MethodGet, "/api/ebooks/paginated?search=cooking", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, ebookIDs(t, decodeBody(t, recorder)), 1)
}

func TestSearchCombinesWithCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	fiction := createTestCategory(t, db, "Fiction")
	cooking := createTestCategory(t, db, "Cooking")
	createTestEbook(t, db, "Go Primer", 10, fiction.ID, 1)
	createTestEbook(t, db, "Go Recipes", 10, cooking.ID, 1)

	path := fmt.Sprintf("/api/ebooks/paginated?search=go&categoryId=%d", cooking.ID)
	recorder := doRequest(server, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, ebookIDs(t, decodeBody(t, recorder)), 1)
}

func TestSellerCannotDeleteForeignEbook(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	owner := createTestUser(t, db, "owner@example.com", models.RoleSeller)
	other := createTestUser(t, db, "other@example.com", models.RoleSeller)
	category := createTestCategory(t, db, "Fiction")
	ebook := createTestEbook(t, db, "Owned Book", 10, category.ID, owner.ID)

	// Ownership failures on an existing ebook are 403, never 404.
	recorder := doRequest(server, http.MethodDelete, fmt.Sprintf("/api/ebooks/%d", ebook.ID), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(server, http.MethodDelete, fmt.Sprintf("/api/ebooks/%d", ebook.ID), tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAdminCanManageAnyEbook(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	category := createTestCategory(t, db, "Fiction")
	ebook := createTestEbook(t, db, "Seller Book", 10, category.ID, seller.ID)

	recorder := doRequest(server, http.MethodPut, fmt.Sprintf("/api/ebooks/%d", ebook.ID), tokenFor(t, admin), gin.H{
		"price": 15.5,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Ebook
	require.NoError(t, db.First(&updated, ebook.ID).Error)
	assert.Equal(t, 15.5, updated.Price)
}

func TestCustomerCannotCreateEbook(t *testing.T) {
	db := newTestDB(t)
	server := newTestServer(t, db)

	customer := createTestUser(t, db, "customer@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "Fiction")

	recorder := doRequest(server, http.MethodPost, "/api/ebooks", tokenFor(t, customer), gin.H{
		"name":        "Sneaky Book",
		"description": "Should not exist",
		"price":       5.0,
		"categoryId":  category.ID,
	})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
