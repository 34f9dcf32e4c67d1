package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/service"
)

const userContextKey = "currentUser"

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth validates the bearer token and stores the resolved user in the
// gin context for handlers to pick up via CurrentUser.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractBearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid authorization header"})
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid authentication credentials"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func extractBearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// CurrentUser returns the authenticated user placed by RequireAuth, or nil
// on routes that skipped the middleware.
func CurrentUser(ctx *gin.Context) *model.User {
	value, ok := ctx.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
