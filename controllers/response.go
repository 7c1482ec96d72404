package controllers

import (
	"net/http"
	"topup-store/services"

	"github.com/gin-gonic/gin"
)

// Every handler answers with the same envelope:
// {success, data?, message?, count?}.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondServiceError(c *gin.Context, err *services.ServiceError) {
	c.JSON(err.StatusCode, gin.H{"success": false, "message": err.Message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func respondNotAuthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
}
