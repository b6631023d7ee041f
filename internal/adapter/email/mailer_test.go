package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailer_SendVerification(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{dialer: d, sender: "noreply@safetails.test", logger: zap.NewNop()}

	require.NoError(t, m.SendVerification(context.Background(), "ana@example.com", "Ana", "http://x/verify?token=abc"))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{verificationSubject}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "token=3Dabc")
}

func TestSMTPMailer_DialFailure(t *testing.T) {
	m := &SMTPMailer{dialer: &fakeDialer{err: errors.New("refused")}, logger: zap.NewNop()}
	err := m.SendPasswordReset(context.Background(), "a@b.c", "A", "link")
	assert.ErrorContains(t, err, "refused")
}

func TestSMTPMailer_CanceledContext(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{dialer: d, logger: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendPasswordReset(ctx, "a@b.c", "A", "link"), context.Canceled)
	assert.Empty(t, d.sent)
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(zap.NewNop())
	assert.NoError(t, m.SendVerification(context.Background(), "a@b.c", "A", "l"))
	assert.NoError(t, m.SendPasswordReset(context.Background(), "a@b.c", "A", "l"))
}
