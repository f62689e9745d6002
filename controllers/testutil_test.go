package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariuki/ebookstore-api/initializers"
	"github.com/Kariuki/ebookstore-api/models"
	"github.com/Kariuki/ebookstore-api/routes"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	initializers.SyncDatabase(db)
	return db
}

func newTestServer(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db)
	routes.EbookRoutes(server, db)
	routes.CartRoutes(server, db)
	routes.AddressRoutes(server, db)
	routes.OrderRoutes(server, db)
	routes.PaymentRoutes(server, db)
	routes.SellerRoutes(server, db)
	routes.ReportRoutes(server, db)
	return server
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roleID uint) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Fullname: "Test User",
		Email:    email,
		Password: string(hash),
		RoleID:   roleID,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Preload("Role").First(&user, user.ID).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role_id": user.RoleID,
		"role":    user.Role.Name,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(server *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " books"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestEbook(t *testing.T, db *gorm.DB, name string, price float64, categoryID, creatorID uint) models.Ebook {
	t.Helper()

	ebook := models.Ebook{
		Name:        name,
		Description: "A book about " + name,
		Price:       price,
		Stock:       100,
		CategoryID:  categoryID,
		CreatorID:   creatorID,
	}
	require.NoError(t, db.Create(&ebook).Error)
	return ebook
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()

	address := models.Address{
		UserID:  userID,
		Street:  "123 Moi Avenue",
		City:    "Nairobi",
		Country: "Kenya",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func addCartItem(t *testing.T, server *gin.Engine, token string, ebookID uint, quantity int) {
	t.Helper()

	recorder := doRequest(server, http.MethodPost, "/api/cart", token, gin.H{
		"ebookId":  ebookID,
		"quantity": quantity,
	})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, recorder.Code)
}
