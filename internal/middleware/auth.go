package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware rejects requests without a valid bearer token and stores
// the requester's id and platform role on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := parseBearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.ErrNotLoggedIn)
			return
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the requester identity when a valid token is
// present and lets anonymous requests through. Listing endpoints use it so
// vote annotation can key off the requester.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := parseBearer(c); ok {
			c.Set("user_id", userID)
			c.Set("user_role", role)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context) (int, string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "", false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}
	sub, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", false
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	return int(sub), role, true
}
