package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	msgTokenRequired = "authorization token required"
	msgTokenExpired  = "token expired"
	msgTokenInvalid  = "invalid token"
	msgUserGone      = "user no longer exists"
)

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// RequireAuth verifies the bearer token and re-fetches the user so that a
// token for a deleted account is rejected even before its expiry. Expired
// tokens, malformed tokens and deleted users each get their own message.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(ctx, msgTokenRequired)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(ctx, msgTokenExpired)
			} else {
				abortUnauthorized(ctx, msgTokenInvalid)
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(ctx, msgTokenInvalid)
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(ctx, msgTokenInvalid)
			return
		}

		var user models.User
		if err := db.Preload("Role").First(&user, uint(userID)).Error; err != nil {
			abortUnauthorized(ctx, msgUserGone)
			return
		}

		ctx.Set("user", claims)
		ctx.Set("currentUser", user)
		ctx.Next()
	}
}
