package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
	"taskboard/internal/model"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	cfg := &config.Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTLHours = 1
	return NewAuthService(cfg, users)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(newFakeUserRepo())

	resp, err := auth.Register(ctx, &model.RegisterRequest{
		Email:    "Dana@Example.com",
		Password: "hunter22!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "dana@example.com", resp.User.Email)
	// Display name falls back to the email local part
	assert.Equal(t, "dana", resp.User.DisplayName)
	assert.Equal(t, model.RoleDesigner, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.PasswordHash)

	login, err := auth.Login(ctx, &model.LoginRequest{Email: "dana@example.com", Password: "hunter22!"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	user, err := auth.Verify(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(newFakeUserRepo())

	_, err := auth.Register(ctx, &model.RegisterRequest{Email: "not-an-email", Password: "hunter22!"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = auth.Register(ctx, &model.RegisterRequest{Email: "dana@example.com", Password: "short"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = auth.Register(ctx, &model.RegisterRequest{Email: "dana@example.com", Password: "hunter22!", Role: "WIZARD"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(newFakeUserRepo())

	_, err := auth.Register(ctx, &model.RegisterRequest{Email: "dana@example.com", Password: "hunter22!"})
	require.NoError(t, err)

	// Same address, different case
	_, err = auth.Register(ctx, &model.RegisterRequest{Email: "DANA@example.com", Password: "hunter22!"})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(newFakeUserRepo())

	_, err := auth.Register(ctx, &model.RegisterRequest{Email: "dana@example.com", Password: "hunter22!"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &model.LoginRequest{Email: "dana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = auth.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "hunter22!"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	auth := newAuthService(newFakeUserRepo())

	_, err := auth.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
