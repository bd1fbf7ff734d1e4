package service

import (
	"fmt"

	"consulto/pkg/mailer"
)

// NotificationService composes review-outcome mail. Delivery is best-effort:
// a failed send surfaces to the caller but the reviewed state stays final.
type NotificationService struct {
	mailer mailer.Mailer
	from   string
}

func NewNotificationService(m mailer.Mailer, from string) *NotificationService {
	return &NotificationService{mailer: m, from: from}
}

func (s *NotificationService) NotifyIdentityApproved(to string) error {
	body := "Your identity verification request has been approved.\n" +
		"You can now use all features of your account.\n"
	return s.mailer.Send(to, s.from, "Identity request approved", body)
}

func (s *NotificationService) NotifyIdentityRejected(to, reason string) error {
	body := fmt.Sprintf("Your identity verification request has been rejected.\n\nReason: %s\n\nYou may submit a new request at any time.\n", reason)
	return s.mailer.Send(to, s.from, "Identity request rejected", body)
}

func (s *NotificationService) NotifyCareerApproved(to string) error {
	body := "Your career request has been approved.\n" +
		"It is now part of your public consultant profile.\n"
	return s.mailer.Send(to, s.from, "Career request approved", body)
}

func (s *NotificationService) NotifyCareerRejected(to, reason string) error {
	body := fmt.Sprintf("Your career request has been rejected.\n\nReason: %s\n\nYou may submit a new request at any time.\n", reason)
	return s.mailer.Send(to, s.from, "Career request rejected", body)
}
