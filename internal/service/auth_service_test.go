package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/config"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/events"
	"judoacademy.app/hub/internal/model"
)

func newAuthService() (AuthService, *MockUserRepository, *MockProfileRepository) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		ResetTokenTTL: 30 * time.Minute,
		AppOrigin:     "http://localhost:3000",
	}
	svc := NewAuthService(users, profiles, nil, events.NewHub(), NewMailer(config.SMTPConfig{}), cfg)
	return svc, users, profiles
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "ana@judoacademy.app").Return(&model.User{
		ID:           uuid.New(),
		Email:        "ana@judoacademy.app",
		PasswordHash: hashPassword(t, "correcta123"),
	}, nil)

	_, err := svc.Login(ctx, dto.LoginInput{Email: "ana@judoacademy.app", Password: "incorrecta"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nadie@judoacademy.app").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(ctx, dto.LoginInput{Email: "nadie@judoacademy.app", Password: "loquesea1"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginReturnsTokenAndStripsHash(t *testing.T) {
	svc, users, profiles := newAuthService()
	ctx := context.Background()
	userID := uuid.New()

	users.On("FindByEmail", ctx, "ana@judoacademy.app").Return(&model.User{
		ID:           userID,
		Email:        "ana@judoacademy.app",
		PasswordHash: hashPassword(t, "correcta123"),
	}, nil)
	profiles.On("FindByID", ctx, userID).Return(&model.Profile{ID: userID, FullName: "Ana"}, nil)

	resp, err := svc.Login(ctx, dto.LoginInput{Email: "ana@judoacademy.app", Password: "correcta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Empty(t, resp.User.PasswordHash)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Ana", resp.Profile.FullName)
}

func TestLoginSurvivesProfileFetchFailure(t *testing.T) {
	svc, users, profiles := newAuthService()
	ctx := context.Background()
	userID := uuid.New()

	users.On("FindByEmail", ctx, "ana@judoacademy.app").Return(&model.User{
		ID:           userID,
		Email:        "ana@judoacademy.app",
		PasswordHash: hashPassword(t, "correcta123"),
	}, nil)
	profiles.On("FindByID", ctx, userID).Return(nil, errors.New("db down"))

	resp, err := svc.Login(ctx, dto.LoginInput{Email: "ana@judoacademy.app", Password: "correcta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Nil(t, resp.Profile)
}

func TestSignupForcesMemberRole(t *testing.T) {
	svc, users, profiles := newAuthService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nueva@judoacademy.app").Return(nil, gorm.ErrRecordNotFound)

	var createdProfile *model.Profile
	users.On("Create", ctx, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Profile")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*model.User)
			user.ID = uuid.New()
			createdProfile = args.Get(2).(*model.Profile)
		}).Return(nil)
	profiles.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&model.Profile{FullName: "Nueva"}, nil)

	_, err := svc.Signup(ctx, dto.SignupInput{
		Email:    "nueva@judoacademy.app",
		Password: "contraseña1",
		FullName: "Nueva",
		Belt:     "Blanco",
	})
	require.NoError(t, err)
	require.NotNil(t, createdProfile)
	assert.Equal(t, model.RoleUser, createdProfile.Role)
}

func TestSessionKeepsUserWhenProfileMissing(t *testing.T) {
	svc, users, profiles := newAuthService()
	ctx := context.Background()
	userID := uuid.New()

	users.On("FindByID", ctx, userID).Return(&model.User{
		ID:    userID,
		Email: "ana@judoacademy.app",
	}, nil)
	profiles.On("FindByID", ctx, userID).Return(nil, gorm.ErrRecordNotFound)

	session, err := svc.Session(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.Nil(t, session.Profile)
}

func TestSendPasswordResetHidesUnknownAddresses(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nadie@judoacademy.app").Return(nil, gorm.ErrRecordNotFound)

	require.NoError(t, svc.SendPasswordReset(ctx, "nadie@judoacademy.app"))
}

func TestConfirmPasswordResetRejectsSessionToken(t *testing.T) {
	svc, users, profiles := newAuthService()
	ctx := context.Background()
	userID := uuid.New()

	users.On("FindByEmail", ctx, "ana@judoacademy.app").Return(&model.User{
		ID:           userID,
		Email:        "ana@judoacademy.app",
		PasswordHash: hashPassword(t, "correcta123"),
	}, nil)
	profiles.On("FindByID", ctx, userID).Return(nil, gorm.ErrRecordNotFound)

	// A login token is not a reset token even though both are signed with
	// the same secret.
	resp, err := svc.Login(ctx, dto.LoginInput{Email: "ana@judoacademy.app", Password: "correcta123"})
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirmInput{
		Token:    resp.AccessToken,
		Password: "nuevacontraseña1",
	})
	require.Error(t, err)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPasswordResetRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newAuthService()

	err := svc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirmInput{
		Token:    "not-a-token",
		Password: "nuevacontraseña1",
	})
	require.Error(t, err)
}
