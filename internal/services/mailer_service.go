// internal/services/mailer_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/orbitcart/orbitcart-backend/internal/config"
)

type MailerService struct {
	config *config.Config
}

func NewMailerService(config *config.Config) *MailerService {
	return &MailerService{config: config}
}

var otpMailTemplate = template.Must(template.New("otp").Parse(`
<div style="background-color: #028355; color: #FFFFFF; padding: 20px; font-family: Arial, sans-serif; text-align: center;">
  <h1 style="color: white;">OTP Verification</h1>
  <p style="color: white;">Your OTP for verification is <strong>{{.OTP}}</strong></p>
  <p style="color: white;">It is valid for {{.ValidFor}}.</p>
</div>`))

func (s *MailerService) SendOTPEmail(to, otp string) error {
	var body bytes.Buffer
	err := otpMailTemplate.Execute(&body, map[string]string{
		"OTP":      otp,
		"ValidFor": "5 minutes",
	})
	if err != nil {
		return fmt.Errorf("failed to render OTP mail: %w", err)
	}

	return s.send(to, "OTP Verification", body.String())
}

func (s *MailerService) send(to, subject, htmlBody string) error {
	cfg := s.config.Email

	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		cfg.FromName, cfg.FromEmail, to, subject, htmlBody,
	)

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort

	if err := smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
