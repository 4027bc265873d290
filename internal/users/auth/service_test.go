// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/apperr"
	"github.com/phamduc/yonde/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repository.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range repository.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) Create(_ context.Context, user *User) error {
	repository.users[user.ID] = user
	return nil
}


type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, email, role string, timeToLive time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepository) {
	t.Helper()
	repository := newFakeUserRepository()
	return NewService(repository, fakeTokenProvider{}), repository
}

func TestRegister(t *testing.T) {
	service, repository := newTestService(t)

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "hana",
		Email:    "hana@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hana", user.Username)
	assert.Equal(t, sec.RoleMember, user.Role)

	// Password must be stored hashed, never in plain text.
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret-pass", user.PasswordHash))

	assert.Len(t, repository.users, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "hana", Email: "hana@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterInput{Username: "other", Email: "hana@example.com", Password: "secret-pass"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, repository := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "hana", Email: "hana@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterInput{Username: "hana", Email: "second@example.com", Password: "secret-pass"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)

	// The conflicting attempt must not leave a second row behind.
	assert.Len(t, repository.users, 1)
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{Username: "hana", Email: "hana@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		session, err := service.Login(ctx, LoginInput{Identifier: "hana@example.com", Password: "secret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+registered.ID, session.AccessToken)
		assert.Equal(t, registered.ID, session.User.ID)
	})

	t.Run("by username", func(t *testing.T) {
		session, err := service.Login(ctx, LoginInput{Identifier: "hana", Password: "secret-pass"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, session.User.ID)
	})
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "hana", Email: "hana@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, LoginInput{Identifier: "nobody", Password: "secret-pass"})
	_, wrongPassErr := service.Login(ctx, LoginInput{Identifier: "hana", Password: "wrong-pass"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	// Unknown identifier and wrong password must return the same message
	// to prevent account enumeration.
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())

	appErr := apperr.As(unknownErr)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestPublicProfileByID(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{Username: "hana", Email: "hana@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	profile, err := service.PublicProfileByID(ctx, registered.ID)
	require.NoError(t, err)

	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "hana", profile.Username)

	_, err = service.PublicProfileByID(ctx, "missing-id")
	require.Error(t, err)
	assert.Equal(t, "User not found", apperr.As(err).Message)
}
