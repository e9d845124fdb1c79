package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemoryAdminsRepository) {
	t.Helper()
	admins := repository.NewMemoryAdminsRepository()
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	_, err = admins.Upsert(context.Background(), "admin", hash)
	require.NoError(t, err)
	return NewAuthService(admins, []byte("test-secret"), zap.NewNop()), admins
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	token, admin, err := svc.Login(context.Background(), "admin", "secret-password")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.Username)
	assert.NotEmpty(t, token)

	adminID, username, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, adminID)
	assert.Equal(t, "admin", username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "admin", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, _ := newTestAuthService(t)

	token, err := svc.IssueToken("some-id", "admin", -time.Hour)
	require.NoError(t, err)

	_, _, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Tampered(t *testing.T) {
	svc, _ := newTestAuthService(t)

	token, err := svc.IssueToken("some-id", "admin", time.Hour)
	require.NoError(t, err)

	_, _, err = svc.VerifyToken(token + "x")
	assert.Error(t, err)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc, _ := newTestAuthService(t)
	other := NewAuthService(repository.NewMemoryAdminsRepository(), []byte("other-secret"), zap.NewNop())

	token, err := svc.IssueToken("some-id", "admin", time.Hour)
	require.NoError(t, err)

	_, _, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("my-password")
	require.NoError(t, err)
	assert.NotEqual(t, "my-password", hash)

	hash2, err := HashPassword("my-password")
	require.NoError(t, err)
	// bcrypt는 솔트 때문에 매번 다른 해시를 낸다
	assert.NotEqual(t, hash, hash2)
}
