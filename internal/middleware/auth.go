package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/internal/service"
)

type AuthMiddleware struct {
	profiles repository.ProfileRepository
	rdb      *redis.Client
	secret   string
}

func NewAuthMiddleware(profiles repository.ProfileRepository, rdb *redis.Client, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		profiles: profiles,
		rdb:      rdb,
		secret:   secret,
	}
}

// ParseToken validates a session token and returns its claims. Password-reset
// tokens are not session tokens and are rejected here.
func (m *AuthMiddleware) ParseToken(tokenString string) (*service.TokenClaims, error) {
	claims := &service.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	if claims.Purpose != "" {
		return nil, fmt.Errorf("not a session token")
	}

	return claims, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		claims, err := m.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		revoked, err := service.IsTokenRevoked(c.Request.Context(), m.rdb, claims.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify session"})
			c.Abort()
			return
		}
		if revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session has been signed out"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireProfile loads the caller's profile into the context. A session whose
// profile cannot be loaded is authenticated but not usable for the portal
// views, so requests past this gate are rejected rather than guessed at.
func (m *AuthMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		profile, err := m.profiles.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "profile not available"})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("profile")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		profile, ok := value.(*model.Profile)
		if !ok || !profile.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ProfileFromContext returns the profile stored by RequireProfile.
func ProfileFromContext(c *gin.Context) (*model.Profile, bool) {
	value, exists := c.Get("profile")
	if !exists {
		return nil, false
	}
	profile, ok := value.(*model.Profile)
	return profile, ok
}
