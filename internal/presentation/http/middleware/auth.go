package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/response"
	"github.com/sangkips/flowpilot-api/pkg/apperror"
	"github.com/sangkips/flowpilot-api/pkg/logger"
	"github.com/sangkips/flowpilot-api/pkg/utils"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID          = "user_id"
	ContextUserEmail       = "user_email"
	ContextUserRoles       = "user_roles"
	ContextUserPermissions = "user_permissions"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, apperror.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, apperror.ErrTokenExpired)
			} else {
				response.Error(c, apperror.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRoles, claims.Roles)
		c.Set(ContextUserPermissions, claims.Permissions)

		ctx := c.Request.Context()
		scoped := logger.FromContext(ctx).With(zap.String("user_id", claims.UserID.String()))
		c.Request = c.Request.WithContext(logger.WithContext(ctx, scoped))

		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, exists := c.Get(ContextUserPermissions)
		if !exists {
			response.Error(c, apperror.ErrForbidden)
			c.Abort()
			return
		}

		userPermissions, ok := permissions.([]string)
		if !ok {
			response.Error(c, apperror.ErrForbidden)
			c.Abort()
			return
		}

		for _, p := range userPermissions {
			if p == permission {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.ErrForbidden)
		c.Abort()
	}
}
