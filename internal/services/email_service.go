package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendPasswordResetEmail(email, token string) error
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	siteURL string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, siteURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (s *emailService) SendPasswordResetEmail(email, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password reset request")

	resetLink := s.siteURL + "/#reset-password?token=" + token
	body := fmt.Sprintf(
		"We received a request to reset the password for your account.\n\n"+
			"Open the link below to choose a new password (valid for 1 hour):\n\n"+
			"%s\n\n"+
			"If you did not request this change, you can ignore this email.\n",
		resetLink,
	)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
