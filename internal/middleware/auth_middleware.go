package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/errors"
)

// Context keys for the authenticated caller
const (
	UserKey  = "user"
	TokenKey = "token"
)

// Authenticator resolves a bearer token to the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// SetAuthUser attaches the caller when the request carries a live token.
// Requests without one continue unauthenticated; routes decide whether that is allowed.
func (m *AuthMiddleware) SetAuthUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("Token rejected - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		c.Set(UserKey, user)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})
		c.Next()
	}
}

// AuthenticateToken rejects requests SetAuthUser did not authenticate.
func (m *AuthMiddleware) AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); !ok {
			GetLoggerFromContext(c).Warn("Unauthenticated request", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token of a "Bearer <token>" header, or "".
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// GetUser returns the authenticated caller
func GetUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}

// GetToken returns the caller's bearer token
func GetToken(c *gin.Context) (string, bool) {
	token := c.GetString(TokenKey)
	return token, token != ""
}
