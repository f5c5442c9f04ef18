package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/netwave-iq/netwave-backend/pkg/auth"
	"github.com/netwave-iq/netwave-backend/pkg/auth/session"
	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/security"
)

type stubUserRepo struct {
	user       *models.AdminUser
	lastLogins int
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error {
	s.lastLogins++
	return nil
}

type stubSessionManager struct {
	refreshToken string
	rotateErr    error
	revoked      []string
}

func (s *stubSessionManager) Generate(context.Context, string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, _, _ string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return session.NewAccessID(), s.refreshToken, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "auth-test-secret",
		Issuer:            "netwave-test",
		ExpirationMinutes: 15,
	}
}

func seedAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@netwave.example",
		Name:         "Site Admin",
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{user: seedAdmin(t, "correct horse")}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: &stubSessionManager{refreshToken: "refresh-1"},
		JWTConfig:      authTestConfig(),
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Admin@netwave.example ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", resp.RefreshToken)
	assert.Equal(t, "admin@netwave.example", resp.User.Email)
	assert.Equal(t, 1, repo.lastLogins)

	claims, err := pkgAuth.ParseAccessToken(authTestConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, repo.user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role.String())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: seedAdmin(t, "correct horse")},
		SessionManager: &stubSessionManager{},
		JWTConfig:      authTestConfig(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "admin@netwave.example",
		Password: "battery staple",
	})
	require.Error(t, err)
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      authTestConfig(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@netwave.example",
		Password: "whatever",
	})
	require.Error(t, err)
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginInactiveUser(t *testing.T) {
	admin := seedAdmin(t, "correct horse")
	admin.IsActive = false
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: admin},
		SessionManager: &stubSessionManager{},
		JWTConfig:      authTestConfig(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "admin@netwave.example",
		Password: "correct horse",
	})
	require.Error(t, err)
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken},
		JWTConfig:      authTestConfig(),
	})
	require.NoError(t, err)

	token, err := pkgAuth.MintAccessToken(authTestConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   "admin",
		JTI:    "session-x",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  token,
		RefreshToken: "stolen",
	})
	require.Error(t, err)
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
