package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendInviteEmail(email, fullName, token string) error
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, baseURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		baseURL: baseURL,
	}
}

func (s *emailService) SendInviteEmail(email, fullName, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "You have been invited to InternHub")

	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>An account has been created for you on InternHub, the internship placement portal.</p>
		<p>Follow the link below to set your password and activate your account:</p>
		<p><a href="%s/invite?token=%s">Activate account</a></p>
		<p>Best regards,<br>The InternHub Team</p>
	`, fullName, s.baseURL, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}

	return nil
}
