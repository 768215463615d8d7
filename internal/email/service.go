package email

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hms-backend/hms-api/config"
)

// Service delivers email. The worker is the only caller; the API
// publishes notifications to the broker instead of mailing directly.
type Service interface {
	Send(to, subject, body string) error
}

type smtpService struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &smtpService{cfg: cfg, dialer: dialer}
}

func (s *smtpService) Send(to, subject, body string) error {
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
