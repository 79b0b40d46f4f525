package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/Debye-Igor/centro-paye-sistema/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService builds the gomail-backed notifier.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendRescheduleMarked(ctx context.Context, to, patientName, date, timeSlot, reason string) error {
	subject := "Cita marcada para reprogramación"
	body := fmt.Sprintf(
		"La cita de %s del %s a las %s quedó pendiente de reprogramación.\nMotivo: %s\n",
		patientName, date, timeSlot, reason,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendRescheduleCommitted(ctx context.Context, to, patientName, newDate, newTimeSlot string) error {
	subject := "Cita reprogramada"
	body := fmt.Sprintf(
		"La cita de %s fue reprogramada para el %s a las %s.\n",
		patientName, newDate, newTimeSlot,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(to, subject, content)
}
