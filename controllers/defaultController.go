package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Ebookstore API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Access user account
- GET/PUT "/api/auth/profile" - Read or update own profile
- POST "/api/auth/forgot-password" - Request password reset
- POST "/api/auth/reset-password/:resetToken" - Reset user password

CATALOG
- GET "/api/ebooks/paginated" - Search and paginate the catalog
- GET "/api/ebooks/:id" - Get ebook by ID
- POST/PUT/DELETE "/api/ebooks" - Manage ebooks (admin/seller)
- POST "/api/ebooks/:id/cover" - Upload ebook cover
- GET "/api/categories" - List categories

CART & ORDERS
- GET/POST/PUT/DELETE "/api/cart" - Manage own cart
- POST "/api/orders" - Checkout
- GET "/api/orders" - Own orders
- GET "/api/orders/admin/all" - All orders
- PATCH "/api/orders/admin/:id/status" - Change order status

PAYMENTS & INVOICES
- POST "/api/payments" - Create payment
- PUT "/api/payments/:id" - Update payment status
- GET "/api/invoices" - Own invoices

SELLERS & REPORTS
- POST "/api/seller-requests" - Apply to become a seller
- PATCH "/api/seller-requests/:id" - Review application (admin)
- GET "/api/reports/sales-summary" - Aggregate sales figures`

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}
