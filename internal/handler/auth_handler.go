package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/middleware"
	"judoacademy.app/hub/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	authMw      *middleware.AuthMiddleware
	rdb         *redis.Client
}

func NewAuthHandler(authService service.AuthService, authMw *middleware.AuthMiddleware, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authMw:      authMw,
		rdb:         rdb,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Logout revokes the presented session token. It always answers 200: logout
// problems are logged server-side, the client's state settles through the
// session-change notifications either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	if value, exists := c.Get("claims"); exists {
		if claims, ok := value.(*service.TokenClaims); ok {
			h.authService.Logout(c.Request.Context(), claims)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Session restores the caller's session state. Anonymous callers (no token,
// invalid token, revoked token) get a null user rather than an error, so
// clients always have a definite state to render.
func (h *AuthHandler) Session(c *gin.Context) {
	tokenString := h.bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}

	claims, err := h.authMw.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}

	revoked, err := service.IsTokenRevoked(c.Request.Context(), h.rdb, claims.ID)
	if err != nil || revoked {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}

	res, err := h.authService.Session(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) SendPasswordReset(c *gin.Context) {
	var input dto.PasswordResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.authService.SendPasswordReset(c.Request.Context(), input.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset email sent"})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var input dto.PasswordResetConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), input); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}
