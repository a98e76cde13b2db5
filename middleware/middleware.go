package middleware

import (
	"net/http"
	"strings"

	"medigate/domain"
	"medigate/utils"

	"github.com/gin-gonic/gin"
)

// Principal is the authenticated identity attached to a request. It is built
// once here and read by handlers; nothing downstream re-parses the token.
type Principal struct {
	UserID string
	Email  string
}

const principalKey = "principal"

// Authenticate validates the bearer session token and attaches the Principal.
// Reset tokens carry a purpose claim and are rejected here: they authorize
// exactly one password change, never general access.
func Authenticate(codec *utils.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		payload, ok := codec.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if !ok || payload.Purpose != "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{UserID: payload.UserID, Email: payload.Email})
		c.Next()
	}
}

// PrincipalFrom returns the authenticated identity for the request, if any.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := val.(Principal)
	return p, ok
}

// RequireRole permits the request only when the authenticated user's stored
// role is in the allowed set.
func RequireRole(userRepo domain.UserRepository, allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), p.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not found",
			})
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Insufficient permissions",
		})
		c.Abort()
	}
}
