package outreach

import (
	"context"
	"time"

	"github.com/go-mail/mail"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
)

// Sender delivers one email body to one address.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Dialer opens one SMTP session.
type Dialer interface {
	Dial() (mail.SendCloser, error)
}

// SMTPSettings configures SMTPSender.
type SMTPSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Subject  string
	Timeout  time.Duration
}

// SMTPSender sends each message over its own authenticated STARTTLS
// session.
type SMTPSender struct {
	dialer  Dialer
	host    string
	from    string
	subject string
}

// NewSMTPSender builds a sender with a go-mail dialer that refuses to
// continue without STARTTLS.
func NewSMTPSender(s SMTPSettings) *SMTPSender {
	d := mail.NewDialer(s.Host, s.Port, s.User, s.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	if s.Timeout > 0 {
		d.Timeout = s.Timeout
	}
	return NewSMTPSenderWithDialer(d, s)
}

// NewSMTPSenderWithDialer builds a sender over an existing dialer.
func NewSMTPSenderWithDialer(d Dialer, s SMTPSettings) *SMTPSender {
	from := s.From
	if from == "" {
		from = s.User
	}
	subject := s.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	return &SMTPSender{dialer: d, host: s.Host, from: from, subject: subject}
}

// Send opens a session, sends one text/plain message and closes the
// session. Failures are *apperr.ExternalServiceError.
func (s *SMTPSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return apperr.NewExternalServiceError("smtp", "send", err)
	}

	log := zap.L().With(
		zap.String("component", "outreach"),
		zap.String("host", s.host),
		zap.String("to", to),
	)

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", s.subject)
	m.SetBody("text/plain", body)

	sc, err := s.dialer.Dial()
	if err != nil {
		log.Error("outreach: smtp dial failed", zap.Error(err))
		return apperr.NewExternalServiceError("smtp", "dial", err)
	}
	defer func() {
		if cerr := sc.Close(); cerr != nil {
			log.Warn("outreach: smtp close failed", zap.Error(cerr))
		}
	}()

	if err := mail.Send(sc, m); err != nil {
		log.Error("outreach: smtp send failed", zap.Error(err))
		return apperr.NewExternalServiceError("smtp", "send", err)
	}

	log.Info("outreach: email sent")
	return nil
}
