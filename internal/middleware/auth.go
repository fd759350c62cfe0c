package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/config"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type authFailure struct {
	code    string
	message string
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fail := authenticate(c, cfg); fail != nil {
			httperr.Unauthorized(c, fail.code, fail.message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			_ = authenticate(c, cfg)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, cfg *config.Config) *authFailure {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return &authFailure{"missing_authorization_header", "authorization header is required"}
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return &authFailure{"invalid_authorization_header", "expected a bearer token"}
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return &authFailure{"invalid_token", "token is invalid or expired"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return &authFailure{"invalid_token_claims", "token claims are unreadable"}
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return &authFailure{"invalid_token_payload", "token subject is not a user id"}
	}
	role, _ := claims["role"].(string)

	c.Set(ContextUserID, userID)
	c.Set(ContextUserRole, role)
	return nil
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "insufficient permissions")
		c.Abort()
	}
}

// UserID returns the authenticated user, or nil on anonymous requests.
func UserID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == RoleAdmin
}
