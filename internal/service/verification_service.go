package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskup/internal/adapter/email"
	"taskup/internal/pkg/config"
	"taskup/internal/pkg/logger"
	pkgErrors "taskup/pkg/errors"
)

// 验证码通过后写入的标记值, 注册时据此放行
const verifiedMarker = "VERIFIED"

type VerificationService interface {
	SendCode(emailAddr string) error
	VerifyCode(emailAddr, code string) (bool, error)
	IsVerified(emailAddr string) bool
	Consume(emailAddr string)
	// Purge 清理过期条目, 由调度器周期调用
	Purge() int
}

type codeEntry struct {
	value     string
	expiresAt time.Time
}

// verificationService 进程内验证码存储。
// 条目随实例生命周期存在, 过期依赖惰性检查与定时Purge双路径。
type verificationService struct {
	mu     sync.Mutex
	codes  map[string]codeEntry
	sender email.Sender
}

func NewVerificationService(sender email.Sender) VerificationService {
	return &verificationService{
		codes:  make(map[string]codeEntry),
		sender: sender,
	}
}

func (s *verificationService) ttl() time.Duration {
	ttl := config.GlobalConfig.Auth.Verification.CodeTTL
	if ttl <= 0 {
		ttl = 120
	}
	return time.Duration(ttl) * time.Second
}

func (s *verificationService) codeLength() int {
	n := config.GlobalConfig.Auth.Verification.CodeLength
	if n <= 0 {
		n = 6
	}
	return n
}

// SendCode 生成验证码并发送邮件。
// 有效期内重复请求被拒绝, 防止邮件轰炸;
// 已验证的邮箱同样拒绝, 避免覆盖掉尚未消费的验证标记。
func (s *verificationService) SendCode(emailAddr string) error {
	s.mu.Lock()
	if entry, ok := s.codes[emailAddr]; ok {
		if entry.value == verifiedMarker {
			s.mu.Unlock()
			return pkgErrors.New(pkgErrors.CodeConflict, "邮箱已通过验证, 请直接完成注册")
		}
		if time.Now().Before(entry.expiresAt) {
			s.mu.Unlock()
			return pkgErrors.New(pkgErrors.CodeConflict, "验证码已发送, 请稍后再试")
		}
	}

	code, err := s.generateCode()
	if err != nil {
		s.mu.Unlock()
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成验证码失败", err)
	}

	s.codes[emailAddr] = codeEntry{
		value:     code,
		expiresAt: time.Now().Add(s.ttl()),
	}
	s.mu.Unlock()

	subject := "TaskUp 邮箱验证码"
	body := fmt.Sprintf("您的验证码是: %s, %d分钟内有效。", code, int(s.ttl().Minutes()))
	if err := s.sender.Send(emailAddr, subject, body); err != nil {
		// 发送失败时撤销验证码, 避免死锁在重发冷却期
		s.mu.Lock()
		delete(s.codes, emailAddr)
		s.mu.Unlock()
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "发送验证码邮件失败", err)
	}

	return nil
}

// VerifyCode 校验验证码, 成功后置为已验证标记, 标记本身不过期
func (s *verificationService) VerifyCode(emailAddr, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[emailAddr]
	if !ok {
		return false, pkgErrors.New(pkgErrors.CodeBadRequest, "验证码不存在或已过期")
	}
	if entry.value == verifiedMarker {
		return true, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, emailAddr)
		return false, pkgErrors.New(pkgErrors.CodeBadRequest, "验证码不存在或已过期")
	}
	if entry.value != code {
		return false, pkgErrors.New(pkgErrors.CodeBadRequest, "验证码错误")
	}

	s.codes[emailAddr] = codeEntry{value: verifiedMarker, expiresAt: time.Now().Add(s.ttl())}
	return true, nil
}

// IsVerified 查询邮箱是否已通过验证
func (s *verificationService) IsVerified(emailAddr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[emailAddr]
	return ok && entry.value == verifiedMarker
}

// Consume 注册成功后移除验证标记, 一次验证只放行一次注册
func (s *verificationService) Consume(emailAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, emailAddr)
}

// Purge 删除所有过期的未验证条目
func (s *verificationService) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	purged := 0
	for addr, entry := range s.codes {
		if entry.value != verifiedMarker && now.After(entry.expiresAt) {
			delete(s.codes, addr)
			purged++
		}
	}
	if purged > 0 {
		logger.Debug("清理过期验证码", zap.Int("count", purged))
	}
	return purged
}

func (s *verificationService) generateCode() (string, error) {
	n := s.codeLength()
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
