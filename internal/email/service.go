package email

import (
	"context"
)

// Service sends the clinic's notification mail. Sends are best-effort;
// scheduling writes never wait on or fail because of mail delivery.
type Service interface {
	SendRescheduleMarked(ctx context.Context, to, patientName, date, timeSlot, reason string) error
	SendRescheduleCommitted(ctx context.Context, to, patientName, newDate, newTimeSlot string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

// NoopService discards all mail; used when SMTP is disabled.
type NoopService struct{}

func (NoopService) SendRescheduleMarked(ctx context.Context, to, patientName, date, timeSlot, reason string) error {
	return nil
}

func (NoopService) SendRescheduleCommitted(ctx context.Context, to, patientName, newDate, newTimeSlot string) error {
	return nil
}

func (NoopService) SendCustom(ctx context.Context, to, subject, content string) error {
	return nil
}
