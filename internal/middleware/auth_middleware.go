package middleware

import (
	"strings"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextPhone  = "user_phone"
)

// AuthRequired validates the bearer token and loads the caller's identity
// into the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, models.UserRole(claims.Role))
		c.Set(ContextPhone, claims.Phone)
		c.Next()
	}
}

// AdminRequired allows only admins past. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return roleRequired(models.UserRoleAdmin)
}

// OwnerRequired allows car owners and admins past. Must run after AuthRequired.
func OwnerRequired() gin.HandlerFunc {
	return roleRequired(models.UserRoleOwner, models.UserRoleAdmin)
}

func roleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c)
		c.Abort()
	}
}
