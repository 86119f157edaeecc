package service

import (
	"bloodbank-backend/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// EmailService sends notification emails over SMTP. Delivery is best-effort:
// the notification record is the source of truth and a failed send must
// never fail the business operation that triggered it.
type EmailService interface {
	Send(to, subject, body string) error
	Enabled() bool
}

type emailService struct {
	cfg    config.SMTPConfig
	log    *logrus.Logger
	dialer *gomail.Dialer
}

func NewEmailService(cfg config.SMTPConfig, log *logrus.Logger) EmailService {
	svc := &emailService{cfg: cfg, log: log}
	if cfg.Host != "" {
		svc.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return svc
}

// Enabled reports whether SMTP is configured at all.
func (s *emailService) Enabled() bool {
	return s.dialer != nil
}

func (s *emailService) Send(to, subject, body string) error {
	if s.dialer == nil {
		s.log.Debugf("SMTP not configured, skipping email to %s", to)
		return nil
	}

	m := gomail.NewMessage()
	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Warnf("Failed to send email to %s: %+v", to, err)
		return err
	}

	return nil
}
