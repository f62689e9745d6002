package controllers

import (
	"log"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
)

// Every response carries a success flag alongside its payload.
func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["success"]; !ok {
		data["success"] = true
	}
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "message": message})
}

// respondWithError logs the underlying error server-side and returns only
// the generic message to the client.
func respondWithError(ctx *gin.Context, status int, message string, err error) {
	if err != nil {
		log.Println(message+":", err)
	}
	sendErrorResponse(ctx, status, message)
}

func currentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get("currentUser")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
