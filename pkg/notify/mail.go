package notify

import (
	"context"

	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Mailjet struct {
	client *mailjet.Client
	cfg    Config
}

func NewMailjet(cfg Config) *Mailjet {
	return &Mailjet{client: mailjet.NewMailjetClient(cfg.MailjetAPIKey, cfg.MailjetSecretKey), cfg: cfg}
}

func (m *Mailjet) messages(a Alert) *mailjet.MessagesV31 {
	return &mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: m.cfg.From,
				Name:  m.cfg.FromName,
			},
			To: &mailjet.RecipientsV31{
				{Email: m.cfg.To},
			},
			Subject:  subject(a),
			HTMLPart: body(a),
		},
	}}
}

func (m *Mailjet) DispatchFailed(_ context.Context, a Alert) error {
	res, err := m.client.SendMailV31(m.messages(a))
	if err != nil {
		return errors.Wrap(err, "mailjet send")
	}
	logrus.WithField("transaction_id", a.TransactionID).Infof("ops alert sent via mailjet: %+v", res)
	return nil
}

// SMTP sends alerts through a plain SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
	cfg    Config
}

func NewSMTP(cfg Config) *SMTP {
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	return &SMTP{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		cfg:    cfg,
	}
}

func (s *SMTP) message(a Alert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", subject(a))
	m.SetBody("text/html", body(a))
	return m
}

func (s *SMTP) DispatchFailed(_ context.Context, a Alert) error {
	if err := s.dialer.DialAndSend(s.message(a)); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	logrus.WithField("transaction_id", a.TransactionID).Info("ops alert sent via smtp")
	return nil
}
