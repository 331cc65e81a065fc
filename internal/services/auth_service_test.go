package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	user, token, err := svc.Register("runner1", "runner1@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)

	// 同じパスワードでログインできる
	loggedIn, token, err := svc.Login("runner1", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// 違うパスワードでは失敗する
	_, _, err = svc.Login("runner1", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	// 存在しないユーザーもパスワード不一致と同じエラー
	_, _, err := svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	_, _, err := svc.Register("runner1", "runner1@example.com", "password123")
	require.NoError(t, err)

	// メールアドレスが違ってもユーザー名の重複は拒否される
	_, _, err = svc.Register("runner1", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	_, _, err := svc.Register("runner1", "runner1@example.com", "password123")
	require.NoError(t, err)

	// ユーザー名が違ってもメールアドレスの重複は拒否される
	_, _, err = svc.Register("runner2", "runner1@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	user, _, err := svc.Register("runner1", "runner1@example.com", "password123")
	require.NoError(t, err)

	// 平文のパスワードは保存されない
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestValidateToken_Claims(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	user, token, err := svc.Register("runner1", "runner1@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "runner1", claims.Username)

	fromToken, err := svc.GetUserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fromToken.ID)
}

func TestValidateToken_Invalid(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, testConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
