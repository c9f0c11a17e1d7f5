package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/app/models/dto"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/mcetin/courseflow/internal/pkg/auth"
)

// PrincipalResolver turns a bearer token into the user behind it
type PrincipalResolver interface {
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
}

// AuthMiddleware guards routes behind bearer-token authentication
type AuthMiddleware struct {
	resolver PrincipalResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// RequireAuth validates the bearer token and resolves the principal before
// any protected handler runs. Handlers only need the request to be
// authenticated; the resolved principal is stored on the context for
// logging but none of the core operations read its identity.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, err := m.resolver.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			// The taxonomy stays internal; the client only sees 401.
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			case errors.Is(err, apperrors.ErrMalformedToken):
				errorDetails = "Malformed token"
			case errors.Is(err, apperrors.ErrUserNotFound):
				errorDetails = "Unknown principal"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set("userID", user.ID)
		c.Set("email", user.Email)

		c.Next()
	}
}
