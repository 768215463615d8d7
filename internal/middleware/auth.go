package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/rbac"
	"github.com/hms-backend/hms-api/pkg/auth"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type AuthMiddleware struct {
	jwtService  auth.JWTService
	rbacService *rbac.Service
}

func NewAuthMiddleware(jwtService auth.JWTService, rbacService *rbac.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		rbacService: rbacService,
	}
}

// Authenticate verifies the bearer token and stores the principal in
// the request context. Any verification failure is a 401; the reason is
// not distinguished to the client.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		principal, err := m.jwtService.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(model.ContextPrincipal, principal)
		c.Set(model.ContextUserID, principal.UserID.String())
		c.Next()
	}
}

// RequireCapabilities gates the route on the capabilities embedded in
// the caller's token. The check is pure set containment against the
// issued set; current role policy is not consulted.
func (m *AuthMiddleware) RequireCapabilities(required ...model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			abortUnauthorized(c, "missing authentication")
			return
		}

		if !m.rbacService.Authorize(principal, required...) {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusForbidden,
					Message: "permission denied",
				},
			})
			return
		}

		c.Next()
	}
}

// PrincipalFrom extracts the verified principal set by Authenticate.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(model.ContextPrincipal)
	if !ok {
		return nil
	}
	principal, ok := v.(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}
