// Package email sends account emails (verification and password reset).
package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ahsanauddry027/safetails-sub000/internal/config"
)

const (
	verificationSubject = "Verify your SafeTails email"
	resetSubject        = "Reset your SafeTails password"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer dialer
	sender string
	logger *zap.Logger
}

func NewSMTPMailer(cfg *config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
		logger: logger.Named("SMTPMailer"),
	}
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, link string) error {
	return m.send(ctx, newMessage(m.sender, to, verificationSubject, verificationBody(name, link)))
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	return m.send(ctx, newMessage(m.sender, to, resetSubject, resetBody(name, link)))
}

func (m *SMTPMailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email", zap.Strings("to", msg.GetHeader("To")), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("Email sent", zap.Strings("to", msg.GetHeader("To")), zap.Strings("subject", msg.GetHeader("Subject")))
	return nil
}

func newMessage(from, to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}

func verificationBody(name, link string) string {
	return fmt.Sprintf("Hi %s,\n\nPlease confirm your email address by opening the link below. It expires in 24 hours.\n\n%s\n\nThe SafeTails team\n", name, link)
}

func resetBody(name, link string) string {
	return fmt.Sprintf("Hi %s,\n\nWe received a request to reset your password. The link below expires in 1 hour.\n\n%s\n\nIf you did not ask for this, ignore this email.\n", name, link)
}

// LogMailer only logs. It is used when SMTP is not configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("LogMailer")}
}

func (m *LogMailer) SendVerification(_ context.Context, to, _, link string) error {
	m.logger.Info("SMTP not configured; verification email not sent", zap.String("to", to), zap.String("link", link))
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.logger.Info("SMTP not configured; password reset email not sent", zap.String("to", to), zap.String("link", link))
	return nil
}
