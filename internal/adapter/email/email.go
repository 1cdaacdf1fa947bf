package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"taskup/internal/pkg/config"
	"taskup/internal/pkg/logger"
)

// Sender 邮件发送接口
type Sender interface {
	Send(to, subject, body string) error
}

// smtpSender 基于SMTP的发送实现
type smtpSender struct {
	cfg *config.EmailConfig
}

func NewSMTPSender(cfg *config.EmailConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, body string) error {
	if !s.cfg.Enabled {
		// 本地开发场景不配SMTP, 验证码直接进日志
		logger.Info("邮件发送已禁用, 仅记录",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body))
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Sender, s.cfg.Password, s.cfg.Host)

	msg := strings.Join([]string{
		"From: " + s.cfg.Sender,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.Sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}
