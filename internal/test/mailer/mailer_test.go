package mailer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"nexus-portal-backend/internal/config"
	"nexus-portal-backend/internal/mailer"
)

type stubResolver struct {
	email string
	err   error
}

func (s *stubResolver) AdminEmail() (string, error) {
	return s.email, s.err
}

func TestResolveRecipient_AdminTokenUsesProfileStore(t *testing.T) {
	resolver := &stubResolver{email: "owner@nexushub.co"}

	got, err := mailer.ResolveRecipient("admin", resolver, "fallback@nexushub.co")
	assert.NoError(t, err)
	assert.Equal(t, "owner@nexushub.co", got)
}

func TestResolveRecipient_AdminTokenFallsBackWhenLookupFails(t *testing.T) {
	resolver := &stubResolver{err: errors.New("no rows")}

	got, err := mailer.ResolveRecipient("admin", resolver, "fallback@nexushub.co")
	assert.NoError(t, err)
	assert.Equal(t, "fallback@nexushub.co", got)
}

func TestResolveRecipient_AdminTokenNeverResolvesLiterally(t *testing.T) {
	_, err := mailer.ResolveRecipient("admin", &stubResolver{}, "")
	assert.ErrorIs(t, err, mailer.ErrInvalidRecipient)
}

func TestResolveRecipient_PlainAddressPassedThrough(t *testing.T) {
	got, err := mailer.ResolveRecipient("client@example.com", nil, "fallback@nexushub.co")
	assert.NoError(t, err)
	assert.Equal(t, "client@example.com", got)
}

func TestResolveRecipient_RejectsNonAddress(t *testing.T) {
	_, err := mailer.ResolveRecipient("not-an-address", nil, "fallback@nexushub.co")
	assert.ErrorIs(t, err, mailer.ErrInvalidRecipient)
}

func TestMailer_SendFailsClosedWithoutCredentials(t *testing.T) {
	m := mailer.New(&config.Config{
		SMTPHost: "smtp.gmail.com",
		SMTPPort: "587",
		MailFrom: "noreply@nexushub.co",
	})

	assert.False(t, m.Configured())

	_, err := m.Send("client@example.com", "subject", "body")
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}
