package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers mail over SMTP. When no host or sender address is
// configured it logs the message and reports success, so local
// environments work without a mail account.
type Sender struct {
	cfg    config.SMTPConfig
	logg   *logger.Logger
	sendFn func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender builds an SMTP sender from config.
func NewSender(cfg config.SMTPConfig, logg *logger.Logger) (*Sender, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Sender{
		cfg:    cfg,
		logg:   logg,
		sendFn: smtp.SendMail,
	}, nil
}

// Configured reports whether real delivery is possible.
func (s *Sender) Configured() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}

// AdminAddress returns the configured back-office alert recipient.
func (s *Sender) AdminAddress() string {
	return s.cfg.AdminAddr
}

func (s *Sender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient required")
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})

	if !s.Configured() {
		s.logg.Warn(logCtx, "smtp not configured, skipping email delivery")
		return nil
	}

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString("MIME-version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.Body)

	if err := s.sendFn(addr, auth, s.cfg.From, []string{msg.To}, []byte(builder.String())); err != nil {
		s.logg.Error(logCtx, "email delivery failed", err)
		return fmt.Errorf("send email: %w", err)
	}
	s.logg.Info(logCtx, "email sent")
	return nil
}
