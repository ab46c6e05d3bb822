// Package mailer is the outbound mail transport: one synchronous
// transactional send per call, no retry, no queue. Delivery guarantees end
// at the SMTP server's accept.
package mailer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"nexus-portal-backend/internal/config"
	"gopkg.in/gomail.v2"
)

// AdminToken is the recipient token call sites use to reach the operator.
const AdminToken = "admin"

var (
	ErrNotConfigured    = errors.New("mail server configuration missing")
	ErrInvalidRecipient = errors.New("recipient must be \"admin\" or a valid email address")
)

// Sender sends one message and returns the message id.
type Sender interface {
	Send(to, subject, body string) (string, error)
	Configured() bool
}

// AdminResolver looks up the operator address from the profile store.
type AdminResolver interface {
	AdminEmail() (string, error)
}

type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func New(cfg *config.Config) *Mailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     port,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (m *Mailer) Configured() bool {
	return m.user != "" && m.password != ""
}

// Send dispatches one plain-text message. The message id is generated
// locally so callers get a stable reference even though SMTP itself returns
// none.
func (m *Mailer) Send(to, subject, body string) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), m.host)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Nexus Hub")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}

	return messageID, nil
}

// ResolveRecipient maps the "admin" token to the operator address: the
// longest-standing admin profile when one exists, the configured address
// otherwise. Anything else must look like an email address.
func ResolveRecipient(to string, resolver AdminResolver, fallback string) (string, error) {
	if to == AdminToken {
		if resolver != nil {
			if email, err := resolver.AdminEmail(); err == nil && email != "" {
				return email, nil
			}
		}
		if fallback == "" {
			return "", ErrInvalidRecipient
		}
		return fallback, nil
	}

	if strings.Contains(to, "@") {
		return to, nil
	}

	return "", ErrInvalidRecipient
}
