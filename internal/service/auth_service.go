package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/config"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/events"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/pkg/apperror"
)

const PurposePasswordReset = "password_reset"

// TokenClaims is shared between token generation here and parsing in the auth
// middleware. Purpose is empty on session tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error)
	// Logout revokes the presented token. Provider errors are logged, never
	// returned; the session settles through the notification channel.
	Logout(ctx context.Context, claims *TokenClaims)
	// Session restores "who is logged in" for a bearer token. A missing or
	// unreadable profile yields a session with a nil profile, not an error.
	Session(ctx context.Context, userID uuid.UUID) (*dto.SessionResponse, error)
	SendPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, input dto.PasswordResetConfirmInput) error
}

type authService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	rdb      *redis.Client
	hub      *events.Hub
	mailer   *Mailer

	secret    string
	tokenTTL  time.Duration
	resetTTL  time.Duration
	appOrigin string
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	rdb *redis.Client,
	hub *events.Hub,
	mailer *Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:     users,
		profiles:  profiles,
		rdb:       rdb,
		hub:       hub,
		mailer:    mailer,
		secret:    cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
		resetTTL:  cfg.ResetTokenTTL,
		appOrigin: cfg.AppOrigin,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	resp, err := s.buildAuthResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.NotifySessionChange(user.ID, events.SignedIn)
	}

	return resp, nil
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.Belt != "" && !model.IsValidBelt(input.Belt) {
		return nil, fmt.Errorf("unknown belt %q: %w", input.Belt, apperror.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	// Self-signup always starts as a plain member; promoting to admin is an
	// admin-only update.
	profile := &model.Profile{
		FullName:  input.FullName,
		Surnames:  input.Surnames,
		Phone:     input.Phone,
		Age:       input.Age,
		Address:   input.Address,
		TutorName: input.TutorName,
		Belt:      input.Belt,
		Role:      model.RoleUser,
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	resp, err := s.buildAuthResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.NotifySessionChange(user.ID, events.SignedIn)
	}

	return resp, nil
}

func (s *authService) Logout(ctx context.Context, claims *TokenClaims) {
	if claims == nil {
		return
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := RevokeToken(ctx, s.rdb, claims.ID, ttl); err != nil {
		log.Printf("Error revoking session token: %v", err)
	}

	if userID, err := uuid.Parse(claims.Subject); err == nil && s.hub != nil {
		s.hub.NotifySessionChange(userID, events.SignedOut)
	}
}

func (s *authService) Session(ctx context.Context, userID uuid.UUID) (*dto.SessionResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.SessionResponse{
		User:    user,
		Profile: s.fetchProfile(ctx, userID),
	}, nil
}

func (s *authService) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No account enumeration: unknown addresses get the same answer.
			return nil
		}
		return err
	}

	expiresAt := time.Now().Add(s.resetTTL)
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Purpose: PurposePasswordReset,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appOrigin, signed)
	return s.mailer.SendPasswordReset(user.Email, resetURL)
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, input dto.PasswordResetConfirmInput) error {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(input.Token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid || claims.Purpose != PurposePasswordReset {
		return apperror.New(0, "invalid or expired reset token", apperror.ErrBadRequest)
	}

	ok, err := ConsumeResetToken(ctx, s.rdb, claims.ID, s.resetTTL)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(0, "reset token already used", apperror.ErrBadRequest)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return apperror.New(0, "invalid reset token subject", apperror.ErrBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hashedPassword))
}

func (s *authService) buildAuthResponse(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt.Unix(),
		User:        user,
		Profile:     s.fetchProfile(ctx, user.ID),
	}, nil
}

// fetchProfile resolves every profile-fetch failure to nil: a missing profile
// is a valid (if degraded) state, never a reason to drop the session.
func (s *authService) fetchProfile(ctx context.Context, userID uuid.UUID) *model.Profile {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error fetching profile for %s: %v", userID, err)
		}
		return nil
	}
	return profile
}
