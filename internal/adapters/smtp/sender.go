package smtp

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/cenkalti/backoff/v4"

	"github.com/muneezaZaki85/galvan-ai-auth-system/config"
	pkglog "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/log"
)

const maxSendRetries = 3

// Sender delivers OTP mail over SMTP with STARTTLS. Transient failures are
// retried with exponential backoff; the caller decides what a final failure
// means (for registration: nothing).
type Sender struct {
	addr     string
	auth     smtp.Auth
	from     string
	logger   pkglog.Logger
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.Config, logger pkglog.Logger) *Sender {
	return &Sender{
		addr:     net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		auth:     smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost),
		from:     cfg.SMTPFrom,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

func (s *Sender) SendOTP(ctx context.Context, email, code string) error {
	msg := otpMessage(s.from, email, code)
	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		return s.sendMail(s.addr, s.auth, s.from, []string{email}, msg)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSendRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		s.logger.Warn().Str("to", email).Err(err).Msg("otp email send failed")
		return err
	}
	return nil
}

func otpMessage(from, to, code string) []byte {
	body := fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"Your OTP for email verification is: %s\r\n\r\n"+
			"This OTP will expire in 10 minutes.\r\n\r\n"+
			"Best regards,\r\nGalvan AI Team\r\n",
		code)
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Galvan AI - Email Verification OTP\r\n"+
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n",
		from, to)
	return []byte(headers + body)
}
