package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	jwtsvc "github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/jwt"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/response"
)

const (
	CtxUserID = "userId"
	CtxRoles  = "roles"
)

// Auth validates the bearer access token and stores userId/roles on the gin
// context for downstream handlers.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.AbortError(c, http.StatusUnauthorized, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "Invalid Authorization header")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		payload, err := jwt.Verify(tokenStr, jwtsvc.ClassAccess)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		c.Set(CtxUserID, payload.UserID)
		c.Set(CtxRoles, payload.Roles)
		c.Next()
	}
}

// RequireAnyRole gates an endpoint on the roles embedded in the access token.
func RequireAnyRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		tokenRoles, ok := c.Get(CtxRoles)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Role not found in token")
			return
		}
		for _, r := range tokenRoles.([]domain.UserRole) {
			if _, ok := allowed[r]; ok {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "Forbidden Access")
	}
}
