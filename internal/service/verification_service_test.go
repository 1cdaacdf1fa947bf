package service

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "taskup/pkg/errors"
)

var codePattern = regexp.MustCompile(`\d{6}`)

// fakeSender 记录发送内容的内存邮件发送器
type fakeSender struct {
	mu       sync.Mutex
	sent     []string // 邮件正文
	failNext bool
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("smtp连接失败")
	}
	f.sent = append(f.sent, body)
	return nil
}

func (f *fakeSender) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	code := codePattern.FindString(f.sent[len(f.sent)-1])
	require.Len(t, code, 6)
	return code
}

func TestVerificationSendAndVerify(t *testing.T) {
	sender := &fakeSender{}
	svc := NewVerificationService(sender)

	require.NoError(t, svc.SendCode("a@test.com"))
	code := sender.lastCode(t)

	// 错误验证码
	ok, err := svc.VerifyCode("a@test.com", "000000")
	if code != "000000" {
		assert.False(t, ok)
		assert.Error(t, err)
	}

	// 正确验证码
	ok, err = svc.VerifyCode("a@test.com", code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, svc.IsVerified("a@test.com"))

	// 已验证状态下重复校验仍然通过
	ok, err = svc.VerifyCode("a@test.com", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// 消费后验证标记失效
	svc.Consume("a@test.com")
	assert.False(t, svc.IsVerified("a@test.com"))
}

func TestVerificationResendBlockedDuringTTL(t *testing.T) {
	sender := &fakeSender{}
	svc := NewVerificationService(sender)

	require.NoError(t, svc.SendCode("a@test.com"))

	err := svc.SendCode("a@test.com")
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeConflict, appErr.Code)
}

func TestVerificationSendFailureRevokesCooldown(t *testing.T) {
	sender := &fakeSender{failNext: true}
	svc := NewVerificationService(sender)

	require.Error(t, svc.SendCode("a@test.com"))

	// 发送失败不进入冷却期, 可立即重试
	require.NoError(t, svc.SendCode("a@test.com"))
	assert.Len(t, sender.sent, 1)
}

func TestVerificationMarkerSurvivesResend(t *testing.T) {
	sender := &fakeSender{}
	svc := NewVerificationService(sender)

	require.NoError(t, svc.SendCode("a@test.com"))
	ok, err := svc.VerifyCode("a@test.com", sender.lastCode(t))
	require.NoError(t, err)
	require.True(t, ok)

	// 已验证的邮箱再次请求验证码被拒绝, 验证标记不被覆盖
	err = svc.SendCode("a@test.com")
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeConflict, appErr.Code)
	assert.True(t, svc.IsVerified("a@test.com"))
	assert.Len(t, sender.sent, 1)
}

func TestVerificationUnknownEmail(t *testing.T) {
	svc := NewVerificationService(&fakeSender{})

	ok, err := svc.VerifyCode("nobody@test.com", "123456")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.False(t, svc.IsVerified("nobody@test.com"))
}

func TestVerificationPurge(t *testing.T) {
	sender := &fakeSender{}
	svc := NewVerificationService(sender).(*verificationService)

	// 过期未验证条目
	svc.codes["expired@test.com"] = codeEntry{value: "111111", expiresAt: time.Now().Add(-time.Minute)}
	// 有效条目
	svc.codes["fresh@test.com"] = codeEntry{value: "222222", expiresAt: time.Now().Add(time.Minute)}
	// 验证标记不随TTL过期
	svc.codes["done@test.com"] = codeEntry{value: verifiedMarker, expiresAt: time.Now().Add(-time.Minute)}

	assert.Equal(t, 1, svc.Purge())

	_, err := svc.VerifyCode("expired@test.com", "111111")
	assert.Error(t, err)

	ok, err := svc.VerifyCode("fresh@test.com", "222222")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, svc.IsVerified("done@test.com"))
}

func TestVerificationExpiredCodeRejected(t *testing.T) {
	svc := NewVerificationService(&fakeSender{}).(*verificationService)

	svc.codes["a@test.com"] = codeEntry{value: "333333", expiresAt: time.Now().Add(-time.Second)}

	ok, err := svc.VerifyCode("a@test.com", "333333")
	assert.False(t, ok)
	assert.Error(t, err)
}
