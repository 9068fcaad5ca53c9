package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API wraps every body in a small envelope carrying the status code,
// kept stable for existing clients.

func RespondWithData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   data,
	})
}

func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"message": message,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  code,
		"message": message,
	})
}

// RespondWithErrorDetail carries a sanitized diagnostic alongside the user
// message. The detail must never contain credentials or hash material.
func RespondWithErrorDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(code, gin.H{
		"status":  code,
		"message": message,
		"error":   detail,
	})
}
