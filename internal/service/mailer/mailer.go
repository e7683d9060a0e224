package mailer

import (
	"fmt"

	"go.uber.org/zap"

	"staysboard/internal/mailer"
)

type MailerService struct {
	log    *zap.Logger
	sender mailer.Sender
}

func NewMailerService(log *zap.Logger, sender mailer.Sender) *MailerService {
	return &MailerService{
		log:    log,
		sender: sender,
	}
}

func (m *MailerService) SendBlockCreatedEmail(to, listingID, startDate, endDate, comment string) error {
	subject := fmt.Sprintf("Calendar block created on %s", listingID)
	body := fmt.Sprintf(`A calendar block was created through the dashboard.

Listing: %s
Period: %s to %s
Comment: %s
`, listingID, startDate, endDate, comment)

	err := m.sender.Send(mailer.Mail{To: to, Subject: subject, Body: body})
	if err != nil {
		m.log.Error("Failed to send block created email", zap.Error(err), zap.String("listing", listingID))
		return err
	}

	m.log.Info("Block created email sent", zap.String("listing", listingID))
	return nil
}

func (m *MailerService) SendRulesUpdatedEmail(to, listingID, actor string) error {
	subject := fmt.Sprintf("House rules updated on %s", listingID)
	body := fmt.Sprintf(`The house rules of listing %s were updated through the dashboard by %s.
`, listingID, actor)

	err := m.sender.Send(mailer.Mail{To: to, Subject: subject, Body: body})
	if err != nil {
		m.log.Error("Failed to send rules updated email", zap.Error(err), zap.String("listing", listingID))
		return err
	}

	m.log.Info("Rules updated email sent", zap.String("listing", listingID))
	return nil
}
