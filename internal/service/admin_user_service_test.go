package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/pkg/apperror"
)

func newAdminUserService() (AdminUserService, *MockUserRepository, *MockProfileRepository, *MockDocumentRepository) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	docs := new(MockDocumentRepository)
	return NewAdminUserService(users, profiles, docs), users, profiles, docs
}

func TestCreateUserDefaultsRole(t *testing.T) {
	svc, users, profiles, _ := newAdminUserService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nuevo@judoacademy.app").Return(nil, gorm.ErrRecordNotFound)

	var createdProfile *model.Profile
	users.On("Create", ctx, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Profile")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*model.User)
			user.ID = uuid.New()
			createdProfile = args.Get(2).(*model.Profile)
		}).Return(nil)
	profiles.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&model.Profile{FullName: "Nuevo"}, nil)

	_, err := svc.CreateUser(ctx, dto.CreateUserInput{
		Email:    "nuevo@judoacademy.app",
		Password: "contraseña1",
		FullName: "Nuevo",
	})
	require.NoError(t, err)
	require.NotNil(t, createdProfile)
	assert.Equal(t, model.RoleUser, createdProfile.Role)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newAdminUserService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "repetido@judoacademy.app").
		Return(&model.User{ID: uuid.New(), Email: "repetido@judoacademy.app"}, nil)

	_, err := svc.CreateUser(ctx, dto.CreateUserInput{
		Email:    "repetido@judoacademy.app",
		Password: "contraseña1",
		FullName: "Repetido",
	})
	require.Error(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUserRejectsUnknownBelt(t *testing.T) {
	svc, users, _, _ := newAdminUserService()
	ctx := context.Background()

	users.On("FindByEmail", ctx, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateUser(ctx, dto.CreateUserInput{
		Email:    "cinturon@judoacademy.app",
		Password: "contraseña1",
		FullName: "Cinturon",
		Belt:     "Dorado",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRemoveUserSeversDocumentsBeforeAnonymizing(t *testing.T) {
	svc, _, profiles, docs := newAdminUserService()
	ctx := context.Background()
	id := uuid.New()

	var order []string
	profiles.On("FindByID", ctx, id).Return(&model.Profile{ID: id, FullName: "Ana"}, nil)
	docs.On("SeverUploader", ctx, id).Run(func(mock.Arguments) {
		order = append(order, "documents")
	}).Return(nil)
	profiles.On("UpdateFields", ctx, id, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "profile")
	}).Return(nil)

	require.NoError(t, svc.RemoveUser(ctx, id))
	assert.Equal(t, []string{"documents", "profile"}, order)
}

func TestRemoveUserAnonymizesProfileFields(t *testing.T) {
	svc, _, profiles, docs := newAdminUserService()
	ctx := context.Background()
	id := uuid.New()

	profiles.On("FindByID", ctx, id).Return(&model.Profile{ID: id}, nil)
	docs.On("SeverUploader", ctx, id).Return(nil)

	var updates map[string]interface{}
	profiles.On("UpdateFields", ctx, id, mock.Anything).Run(func(args mock.Arguments) {
		updates = args.Get(2).(map[string]interface{})
	}).Return(nil)

	require.NoError(t, svc.RemoveUser(ctx, id))
	assert.Equal(t, model.AnonymizedFullName, updates["full_name"])
	assert.Equal(t, model.RoleUser, updates["role"])
	assert.Nil(t, updates["group_id"])
	assert.Nil(t, updates["age"])
	assert.Equal(t, "", updates["belt"])
}

func TestRemoveUserKeepsProfileWhenSeverFails(t *testing.T) {
	svc, _, profiles, docs := newAdminUserService()
	ctx := context.Background()
	id := uuid.New()

	profiles.On("FindByID", ctx, id).Return(&model.Profile{ID: id}, nil)
	docs.On("SeverUploader", ctx, id).Return(errors.New("db down"))

	err := svc.RemoveUser(ctx, id)
	require.Error(t, err)
	profiles.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserValidatesRole(t *testing.T) {
	svc, _, profiles, _ := newAdminUserService()
	ctx := context.Background()
	id := uuid.New()
	role := "sensei"

	profiles.On("FindByID", ctx, id).Return(&model.Profile{ID: id}, nil)

	_, err := svc.UpdateUser(ctx, id, dto.UpdateUserInput{Role: &role})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	profiles.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}
