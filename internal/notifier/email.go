package notifier

import (
	"bytes"
	"context"
	"errors"

	"github.com/wneessen/go-mail"

	"IDXScreener/internal/model"
)

// EmailNotifier sends messages over SMTP with STARTTLS and plain auth.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// TLSPolicy defaults to mail.TLSMandatory.
	TLSPolicy mail.TLSPolicy
}

// NewEmailNotifier creates an SMTP notifier. An empty username falls back to from.
func NewEmailNotifier(host string, port int, username, password, from string) *EmailNotifier {
	if username == "" {
		username = from
	}
	return &EmailNotifier{
		Host:      host,
		Port:      port,
		Username:  username,
		Password:  password,
		From:      from,
		TLSPolicy: mail.TLSMandatory,
	}
}

func (e *EmailNotifier) Name() string { return "email" }

// Send delivers msg to msg.To.
func (e *EmailNotifier) Send(ctx context.Context, msg model.Message) error {
	if e.Password == "" {
		return transmissionErr("smtp", errors.New("no SMTP password configured"))
	}
	m, err := e.buildMessage(msg)
	if err != nil {
		return transmissionErr("build message", err)
	}

	client, err := mail.NewClient(e.Host,
		mail.WithPort(e.Port),
		mail.WithTLSPolicy(e.TLSPolicy),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.Username),
		mail.WithPassword(e.Password),
	)
	if err != nil {
		return transmissionErr("smtp client", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return transmissionErr("smtp send", err)
	}
	return nil
}

func (e *EmailNotifier) buildMessage(msg model.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(e.From); err != nil {
		return nil, err
	}
	if msg.To == "" {
		return nil, errors.New("no recipient")
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	for _, a := range msg.Attachments {
		if err := m.AttachReader(a.Name, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return nil, err
		}
	}
	return m, nil
}
