package middleware

import (
	"fmt"
	"net/http"
	"time"

	"oneclip/clip-api/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewSessionMiddleware rejects requests without a valid auth_token cookie.
// The username claim is checked against the user store so tokens outlive
// neither account deletion nor renames, and ends up in the context as
// "username".
func NewSessionMiddleware(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		username, err := sessionUsername(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Not logged in",
				"requestID": requestID,
			})
			return
		}

		all, err := users.Load()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load users for session check", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if _, ok := all[username]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Not logged in",
				"requestID": requestID,
			})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

// NewOptionalSessionMiddleware sets "username" when a valid session cookie
// is present and lets anonymous requests through untouched.
func NewOptionalSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, err := sessionUsername(c); err == nil {
			c.Set("username", username)
		}

		c.Next()
	}
}

func sessionUsername(c *gin.Context) (string, error) {
	tokenStr, err := c.Cookie("auth_token")
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenMalformed
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() >= int64(exp) {
		return "", jwt.ErrTokenExpired
	}

	return username, nil
}
