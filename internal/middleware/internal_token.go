package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/response"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

// InternalTokenAuth protects service-to-service endpoints with the shared
// rz-auth-key header used by the sibling services.
func InternalTokenAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			log.Printf("internal_auth trace_id=%s reason=token_not_configured", trace.ID(c.Request.Context()))
			response.AbortError(c, http.StatusInternalServerError, "Internal token is not configured")
			return
		}
		if c.GetHeader("rz-auth-key") != expected {
			log.Printf("internal_auth trace_id=%s reason=invalid_token", trace.ID(c.Request.Context()))
			response.AbortError(c, http.StatusForbidden, "Forbidden Access")
			return
		}
		c.Next()
	}
}
