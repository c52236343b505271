package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"campus_tracker/internal/models"
)

// Tokens expire after 24 hours; there is no server-side revocation list, but
// RequireAuth re-loads the user on every request so a deleted account stops
// working immediately.
const tokenLifetime = 24 * time.Hour

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "dev-secret-bus-tracker" // dev fallback only, see MustHaveSecret
}

// MustHaveSecret fails startup when running in production without an
// explicit signing secret. Call it from main before serving.
func MustHaveSecret() error {
	if os.Getenv("JWT_SECRET") != "" {
		return nil
	}
	if os.Getenv("APP_ENV") == "production" || os.Getenv("GIN_MODE") == "release" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

// UserFinder is the slice of the user store the auth middleware needs.
type UserFinder interface {
	FindByID(id uint) (*models.User, error)
}

// GenerateToken signs a token embedding the user's identity and role.
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// authenticate validates the bearer token, re-loads the referenced user and
// stores identity in the gin context. A token for a user that no longer
// exists is rejected. Returns false after aborting the request.
func authenticate(c *gin.Context, users UserFinder) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	claims, err := parseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return false
	}

	idClaim, ok := claims["user_id"].(float64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}

	user, err := users.FindByID(uint(idClaim))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		return false
	}

	c.Set("user", user)
	c.Set("user_id", user.ID)
	c.Set("role", user.Role)
	return true
}

// RequireAuth ensures a valid token referencing a live user.
func RequireAuth(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, users) {
			c.Next()
		}
	}
}

// RequireRoles ensures the token is valid and the user's current role is one
// of the allowed roles. The stored role wins over the token claim, so a role
// change takes effect without waiting for token expiry.
func RequireRoles(users UserFinder, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, users) {
			return
		}

		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Allowed roles: " + strings.Join(roles, ", "),
		})
	}
}
