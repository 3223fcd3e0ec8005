package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	BaseURL   string
}

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer *templateRenderer
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" || config.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	return &SMTPProvider{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: renderer,
	}, nil
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to, username, token string) error {
	body, err := p.renderer.Render(templateData{
		Subject:    "Verify your email",
		UserName:   username,
		Message:    "Welcome! Confirm your email address to start completing tasks.",
		ActionURL:  fmt.Sprintf("%s/verify?token=%s", p.config.BaseURL, token),
		ActionText: "Verify Email",
		FromName:   p.config.FromName,
	})
	if err != nil {
		return err
	}
	return p.Send(to, "Verify your email", body)
}

func (p *SMTPProvider) SendNotification(to, subject, message string) error {
	body, err := p.renderer.Render(templateData{
		Subject:  subject,
		Message:  message,
		FromName: p.config.FromName,
	})
	if err != nil {
		return err
	}
	return p.Send(to, subject, body)
}

func (p *SMTPProvider) SendAdminInvite(to, password string) error {
	body, err := p.renderer.Render(templateData{
		Subject:    "Admin account created",
		Message:    fmt.Sprintf("An admin account has been created for you. Temporary password: %s", password),
		ActionURL:  fmt.Sprintf("%s/admin/login", p.config.BaseURL),
		ActionText: "Open Admin Panel",
		FromName:   p.config.FromName,
	})
	if err != nil {
		return err
	}
	return p.Send(to, "Admin account created", body)
}
