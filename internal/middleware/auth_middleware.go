package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tolgakurt/forumcore/internal/app/models"
	"github.com/tolgakurt/forumcore/internal/app/models/dto"
	"github.com/tolgakurt/forumcore/internal/pkg/auth"
)

// actingUserKey is where the resolved acting user lives on the gin context.
const actingUserKey = "actingUser"

// AuthMiddleware resolves the acting user from the host-issued bearer token.
// Resolution happens once per request; services receive the user explicitly
// and never reach back into the request.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// ResolveActingUser parses the Authorization header when present. Anonymous
// requests pass through with no acting user (guests may post); a malformed
// or expired token is rejected so a client never silently degrades to guest.
func (m *AuthMiddleware) ResolveActingUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
			return
		}

		c.Set(actingUserKey, claims.ActingUser())
		c.Next()
	}
}

// AdminRequired rejects requests whose acting user is missing or lacks the
// admin capability. Runs before any handler state is touched.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActingUser(c)
		if actor == nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		if !actor.Admin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Admin capability required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// ActingUser returns the acting user resolved for this request, or nil for
// anonymous requests.
func ActingUser(c *gin.Context) *models.ActingUser {
	value, exists := c.Get(actingUserKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*models.ActingUser)
	if !ok {
		return nil
	}
	return actor
}
