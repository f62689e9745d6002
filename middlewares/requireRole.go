package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireRole allows the request through when the token's role matches any
// of the given entries, by lowercase name or by numeric role id.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found in context"})
			return
		}

		claims := userClaims.(jwt.MapClaims)
		roleName, _ := claims["role"].(string)
		roleName = strings.ToLower(roleName)

		roleID := ""
		if id, ok := claims["role_id"].(float64); ok {
			roleID = strconv.Itoa(int(id))
		}

		for _, role := range allowed {
			if role == roleName || role == roleID {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient permissions"})
	}
}
