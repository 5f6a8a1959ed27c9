package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/playea/beach-api/config"
	"github.com/playea/beach-api/pkg/logger"
	"go.uber.org/zap"
)

// Message is a rendered HTML mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendFunc adapts a function to Sender.
type SendFunc func(ctx context.Context, msg Message) error

func (f SendFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

type Mailer struct {
	sender    Sender
	appName   string
	clientURL string
	now       func() time.Time
}

// New builds a mailer from config. When mail is disabled messages are only
// logged.
func New(cfg *config.Config) *Mailer {
	var sender Sender = logSender{}
	if cfg.Mail.Enabled {
		sender = &smtpSender{cfg: cfg.Mail}
	}
	return NewWithSender(sender, cfg.App.Name, cfg.App.ClientURL)
}

func NewWithSender(sender Sender, appName, clientURL string) *Mailer {
	return &Mailer{
		sender:    sender,
		appName:   appName,
		clientURL: clientURL,
		now:       time.Now,
	}
}

// SendWelcome renders and sends the welcome mail for a new account.
func (m *Mailer) SendWelcome(ctx context.Context, to, name, username string) error {
	data := WelcomeData{
		AppName:   m.appName,
		Name:      name,
		Username:  username,
		ClientURL: m.clientURL,
		SentAt:    m.now(),
	}

	subject, err := RenderTemplate("welcome_subject", welcomeSubjectTemplate, data)
	if err != nil {
		return fmt.Errorf("render welcome subject: %w", err)
	}
	body, err := RenderTemplate("welcome_body", welcomeBodyTemplate, data)
	if err != nil {
		return fmt.Errorf("render welcome body: %w", err)
	}

	return m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: body})
}

type logSender struct{}

func (logSender) Send(ctx context.Context, msg Message) error {
	logger.DebugWithContext(ctx, "Mail disabled, message not sent").
		String("to", msg.To).
		String("subject", msg.Subject).
		Log()
	return nil
}

type smtpSender struct {
	cfg config.MailConfig
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	start := time.Now()
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, buildMIME(s.cfg.From, msg)); err != nil {
		logger.GetLogger().Error("Failed to send mail",
			zap.String("to", msg.To),
			zap.String("smtp_addr", addr),
			zap.Error(err),
		)
		return err
	}

	logger.InfoWithContext(ctx, "Mail sent").
		String("to", msg.To).
		String("subject", msg.Subject).
		Duration(time.Since(start)).
		Log()
	return nil
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
