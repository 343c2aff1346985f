package services

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
)

// SendConfirmationEmail mails the single-use confirmation link to a freshly
// registered address. Function variable so tests can stub the transport.
var SendConfirmationEmail = func(email, token string) error {
	cfg := config.AppConfig
	link := fmt.Sprintf("%s/api/auth/confirm?token=%s", cfg.AppBaseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Confirmation Email")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Please confirm your email address by clicking the link below:</p><a href="%s">Click here to confirm your account!</a>`,
		link,
	))

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return d.DialAndSend(m)
}
