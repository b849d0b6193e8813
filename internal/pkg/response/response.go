package response

import "github.com/gin-gonic/gin"

// StatusBlocked is the product-reserved status meaning "must re-authenticate /
// contact support", distinguishable from a plain validation 400.
const StatusBlocked = 469

// Error writes the service-wide error envelope {statusCode, message}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"message":    message,
	})
}

// ErrorWithDetails adds field-level errors to the envelope.
func ErrorWithDetails(c *gin.Context, statusCode int, message string, errors any) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"message":    message,
		"errors":     errors,
	})
}

// AbortError writes the envelope and stops the handler chain; for middleware.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"statusCode": statusCode,
		"message":    message,
	})
}
