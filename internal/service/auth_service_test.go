package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

func verifyEmail(t *testing.T, svc VerificationService, sender *fakeSender, email string) {
	t.Helper()
	require.NoError(t, svc.SendCode(email))
	ok, err := svc.VerifyCode(email, sender.lastCode(t))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterRequiresVerifiedEmail(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	verification := NewVerificationService(sender)
	svc := NewAuthService(repository.NewUserRepository(db), verification)

	req := &dto.RegisterRequest{
		FirstName: "三",
		LastName:  "张",
		Email:     "zhang@test.com",
		Password:  "password123",
	}

	_, err := svc.Register(req)
	assert.ErrorIs(t, err, pkgErrors.ErrEmailNotVerified)

	verifyEmail(t, verification, sender, req.Email)

	user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, req.Email, user.Email)
	assert.NotEmpty(t, user.ID)

	// 注册消费验证标记, 同一标记不能放行第二次注册
	assert.False(t, verification.IsVerified(req.Email))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	verification := NewVerificationService(sender)
	svc := NewAuthService(repository.NewUserRepository(db), verification)

	req := &dto.RegisterRequest{
		FirstName: "三",
		LastName:  "张",
		Email:     "zhang@test.com",
		Password:  "password123",
	}

	verifyEmail(t, verification, sender, req.Email)
	_, err := svc.Register(req)
	require.NoError(t, err)

	verifyEmail(t, verification, sender, req.Email)
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, pkgErrors.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	verification := NewVerificationService(sender)
	svc := NewAuthService(repository.NewUserRepository(db), verification)

	verifyEmail(t, verification, sender, "zhang@test.com")
	_, err := svc.Register(&dto.RegisterRequest{
		FirstName: "三",
		LastName:  "张",
		Email:     "zhang@test.com",
		Password:  "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "zhang@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "zhang@test.com", resp.User.Email)

	// 密码错误与用户不存在返回同一错误
	_, err = svc.Login(&dto.LoginRequest{Email: "zhang@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	verification := NewVerificationService(sender)
	svc := NewAuthService(repository.NewUserRepository(db), verification)

	verifyEmail(t, verification, sender, "zhang@test.com")
	_, err := svc.Register(&dto.RegisterRequest{
		FirstName: "三",
		LastName:  "张",
		Email:     "zhang@test.com",
		Password:  "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "zhang@test.com", Password: "password123"})
	require.NoError(t, err)

	renewed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// 访问Token不能用于刷新
	_, err = svc.RefreshToken(resp.AccessToken)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}
